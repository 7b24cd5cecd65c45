package types

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// EntityID - 64-битный идентификатор сущности.
//
// EntityID является value-type: дешёвое копирование, сравнение и
// использование в качестве ключа реестра уровня.
//
// Формат битов (от старших к младшим):
//
//	[ Depth (8) | Kind (8) | Generation (16) | Serial (32) ]
//
// Где:
//   - Depth - глубина уровня, на котором сущность была создана
//   - Kind - вид сущности (игрок, монстр, сундук, лестница, предмет)
//   - Generation - поколение аллокатора (новая сессия = новое поколение)
//   - Serial - порядковый номер внутри сессии, начиная с 1
type EntityID uint64

// NilEntityID - нулевой идентификатор. Сущность с таким ID создать нельзя.
const NilEntityID EntityID = 0

const (
	bitsSerial = 32
	bitsGen    = 16
	bitsKind   = 8
	bitsDepth  = 8

	shiftGen   = bitsSerial
	shiftKind  = bitsSerial + bitsGen
	shiftDepth = bitsSerial + bitsGen + bitsKind

	maskSerial = (1 << bitsSerial) - 1
	maskGen    = (1 << bitsGen) - 1
	maskKind   = (1 << bitsKind) - 1
	maskDepth  = (1 << bitsDepth) - 1
)

// PackEntityID собирает EntityID из составных частей.
// Проверок диапазонов нет: лишние старшие биты отбрасываются типами аргументов.
func PackEntityID(depth uint8, kind uint8, gen uint16, serial uint32) EntityID {
	return EntityID(
		(uint64(depth) << shiftDepth) |
			(uint64(kind) << shiftKind) |
			(uint64(gen) << shiftGen) |
			uint64(serial),
	)
}

// Serial возвращает порядковый номер сущности.
func (id EntityID) Serial() uint32 {
	return uint32(id & maskSerial)
}

// Generation возвращает поколение аллокатора.
func (id EntityID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

// Kind возвращает вид сущности (см. enums.EntityKind).
func (id EntityID) Kind() uint8 {
	return uint8((id >> shiftKind) & maskKind)
}

// Depth возвращает глубину уровня рождения.
func (id EntityID) Depth() uint8 {
	return uint8((id >> shiftDepth) & maskDepth)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String возвращает человекочитаемое представление для логов.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}

	return fmt.Sprintf(
		"[depth=%d kind=%d gen=%d serial=%d]",
		id.Depth(),
		id.Kind(),
		id.Generation(),
		id.Serial(),
	)
}

// MarshalJSON сериализует EntityID как строку, чтобы JS-клиент не терял точность uint64.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строковое, так и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}

// IDAllocator выдаёт уникальные EntityID в пределах одной сессии.
// Генератор уровней, таблица добычи и сессия делят один аллокатор.
type IDAllocator struct {
	gen    uint16
	serial atomic.Uint32
}

// NewIDAllocator создает аллокатор для поколения gen.
func NewIDAllocator(gen uint16) *IDAllocator {
	return &IDAllocator{gen: gen}
}

// Next возвращает следующий свободный идентификатор. Никогда не возвращает NilEntityID.
func (a *IDAllocator) Next(depth uint8, kind uint8) EntityID {
	return PackEntityID(depth, kind, a.gen, a.serial.Add(1))
}

// Issued возвращает количество выданных идентификаторов.
func (a *IDAllocator) Issued() uint32 {
	return a.serial.Load()
}
