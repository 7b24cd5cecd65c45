package types

import (
	"fmt"
	"testing"
)

func TestMakeGlyph(t *testing.T) {
	type args struct {
		colorRGB uint32
		char     byte
	}

	tests := []struct {
		name string
		args args
		want Glyph
	}{
		{
			name: "basic - orange A",
			args: args{colorRGB: 0xFFA500, char: 'A'},
			want: Glyph(0xFFA50041),
		},
		{
			name: "black space",
			args: args{colorRGB: 0x000000, char: ' '},
			want: Glyph(0x00000020),
		},
		{
			name: "color truncation (ignore alpha)",
			args: args{colorRGB: 0x12345678, char: 'x'},
			want: Glyph(0x34567878), // Берется только 0x345678 (младшие 24 бита)
		},
		{
			name: "max char",
			args: args{colorRGB: 0x404040, char: 0xFF},
			want: Glyph(0x404040FF),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeGlyph(tt.args.colorRGB, tt.args.char); got != tt.want {
				t.Errorf("MakeGlyph() = 0x%08X, want 0x%08X", got, tt.want)
			}
		})
	}
}

func TestGlyph_Dim(t *testing.T) {
	tests := []struct {
		name string
		g    Glyph
		want Glyph
	}{
		{"white wall", MakeGlyph(0xFFFFFF, '#'), MakeGlyph(0x7F7F7F, '#')},
		{"orange floor", MakeGlyph(0xFFA500, '.'), MakeGlyph(0x7F5200, '.')},
		{"black stays black", MakeGlyph(0x000000, ' '), MakeGlyph(0x000000, ' ')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.Dim(); got != tt.want {
				t.Errorf("Dim() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGlyph_Rune(t *testing.T) {
	if got := Blank.Rune(); got != ' ' {
		t.Errorf("Blank.Rune() = %q, want ' '", got)
	}
	if got := MakeGlyph(0xFFFFFF, '@').Rune(); got != '@' {
		t.Errorf("Rune() = %q, want '@'", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"#3C1CFD", 0x3C1CFD, false},
		{"ffa500", 0xFFA500, false},
		{" #000000 ", 0x000000, false},
		{"#FFF", 0, true},
		{"#GGGGGG", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = 0x%06X, want 0x%06X", tt.in, got, tt.want)
		}
	}
}

func TestGlyph_String(t *testing.T) {
	tests := []struct {
		name string
		g    Glyph
		want string
	}{
		{"printable char", MakeGlyph(0xFFA500, 'A'), "Glyph{char='A', color=#FFA500}"},
		{"newline escape", MakeGlyph(0xFFFFFF, '\n'), "Glyph{char='\\x0A', color=#FFFFFF}"},
		{"null char", MakeGlyph(0x123456, 0), "Glyph{char='\\x00', color=#123456}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Пример палитры для простого уровня.
func ExampleGlyph_drawing() {
	palette := []Glyph{
		MakeGlyph(0x808080, '#'), // Стена пещеры
		MakeGlyph(0x00FF00, '.'), // Трава
		MakeGlyph(0xFFFFFF, '@'), // Игрок
		MakeGlyph(0xFFFF00, 'g'), // Гоблин
	}

	for i, glyph := range palette {
		fmt.Printf("%d: %s\n", i, glyph.String())
	}

	// Output:
	// 0: Glyph{char='#', color=#808080}
	// 1: Glyph{char='.', color=#00FF00}
	// 2: Glyph{char='@', color=#FFFFFF}
	// 3: Glyph{char='g', color=#FFFF00}
}
