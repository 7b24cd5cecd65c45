package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rotten-soup/internal/domain"
)

const (
	MagicHeader string = `RSRP` // 4 байта
	Version1    uint32 = 1

	maxLevelName = 255
	maxPayload   = 65535
)

// RecordedCommand - одна команда игрока в порядке поступления
type RecordedCommand struct {
	Seq     int
	Action  domain.ActionType
	Payload []byte
}

// Recording - всё, что нужно, чтобы воспроизвести партию:
// мастер-зерно, стартовый уровень и команды игрока.
// Уровни детерминированы зерном, поэтому карта не сохраняется.
type Recording struct {
	Seed       int64
	Timestamp  int64
	StartLevel string
	Commands   []RecordedCommand
}

// FileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: тут нет слайсов и строк, только массивы и числа.
type FileHeader struct {
	Magic        [4]byte // 4 байта
	Version      uint32  // 4 байта
	Seed         int64   // 8 байт
	Timestamp    int64   // 8 байт
	CommandCount int32   // 4 байта
	LevelNameLen uint8   // 1 байт
}

// CommandHeader - заголовок каждой записи команды.
type CommandHeader struct {
	Seq        int32  // 4
	Action     uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет запись в SaveDir и возвращает путь к файлу
func (s *ReplayService) Save(rec *Recording) (string, error) {
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().Unix()
	}
	filename := fmt.Sprintf("replay_%d_%s_%d.rsrp", rec.Seed, fileSafe(rec.StartLevel), rec.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteRecording(w, rec); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}

// fileSafe оставляет в имени уровня только буквы, цифры, '-' и '_'
func fileSafe(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if safe == "" {
		return "level"
	}
	return safe
}

func WriteRecording(w io.Writer, rec *Recording) error {
	name := []byte(rec.StartLevel)
	if len(name) > maxLevelName {
		return fmt.Errorf("level name too long: %d", len(name))
	}

	// 1. Глобальный заголовок
	header := FileHeader{
		Version:      Version1,
		Seed:         rec.Seed,
		Timestamp:    rec.Timestamp,
		CommandCount: int32(len(rec.Commands)),
		LevelNameLen: uint8(len(name)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(name); err != nil {
		return err
	}

	// 2. Команды
	for _, cmd := range rec.Commands {
		payloadLen := len(cmd.Payload)
		if payloadLen > maxPayload {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		ch := CommandHeader{
			Seq:        int32(cmd.Seq),
			Action:     uint8(cmd.Action),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &ch); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(cmd.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
