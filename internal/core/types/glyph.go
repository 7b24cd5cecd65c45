package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Glyph - упакованный цветной символ для отрисовки клетки.
//
//	[0:8]  - символ (ASCII) - маска 0xFF
//	[8:32] - RGB-цвет переднего плана - маска 0xFFFFFF
//
// Клетка рисуется как стопка глифов: фон, затем обитатели, затем рамка выбора.
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1
	maskColor = (1 << bitsColor) - 1
)

// Blank - пустой чёрный глиф для клеток, которые игрок ещё не видел.
const Blank Glyph = 0

// MakeGlyph создает Glyph из RGB-цвета 0xRRGGBB и символа.
// Учитываются только младшие 24 бита цвета.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

// Color извлекает 24-битный RGB-цвет.
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

// Char извлекает символ.
func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// Rune возвращает символ для терминала. Нулевой символ рисуется пробелом.
func (g Glyph) Rune() rune {
	if g.Char() == 0 {
		return ' '
	}
	return rune(g.Char())
}

// Dim возвращает тот же символ с цветом, приглушённым до половины яркости.
// Так рисуются клетки из памяти (видены раньше, но не сейчас).
func (g Glyph) Dim() Glyph {
	c := g.Color()
	r := (c >> 16 & 0xFF) / 2
	gr := (c >> 8 & 0xFF) / 2
	b := (c & 0xFF) / 2
	return MakeGlyph(r<<16|gr<<8|b, g.Char())
}

// String реализует fmt.Stringer. Формат: "Glyph{char='A', color=#FFA500}"
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})

	// Для непечатаемых символов показываем hex
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}

	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// HexColor возвращает цвет в виде "#RRGGBB".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

// ParseHexColor разбирает "#RRGGBB" (решётка необязательна) из каталогов данных.
func ParseHexColor(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}
