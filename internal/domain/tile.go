package domain

import "rotten-soup/internal/core/types"

// Terrain - неизменяемое описание подложки клетки.
type Terrain struct {
	Name    string      `json:"name"`
	Blocked bool        `json:"blocked"` // Непроходима
	Opaque  bool        `json:"opaque"`  // Загораживает обзор
	Glyph   types.Glyph `json:"glyph"`
	// Alt - второй кадр анимации (вода, огонь). Blank, если анимации нет.
	Alt types.Glyph `json:"alt"`
}

// Marker - рамка выбора прицела. Хранится отдельно от обитателей клетки.
type Marker uint8

const (
	MarkerNone Marker = iota
	MarkerTargetable
	MarkerUntargetable
)

func (m Marker) String() string {
	switch m {
	case MarkerTargetable:
		return "TARGETABLE"
	case MarkerUntargetable:
		return "UNTARGETABLE"
	}
	return "NONE"
}

// Glyph рамки для отрисовки поверх клетки
func (m Marker) Glyph() types.Glyph {
	switch m {
	case MarkerTargetable:
		return types.MakeGlyph(0xFFFF00, 'X')
	case MarkerUntargetable:
		return types.MakeGlyph(0xFF0000, 'X')
	}
	return types.Blank
}

// Tile - клетка уровня. Принадлежит сетке своего Level.
type Tile struct {
	Pos     Position `json:"pos"`
	Terrain Terrain  `json:"terrain"`

	// Occupants - только настоящие сущности, в порядке появления на клетке
	Occupants []*Entity `json:"-"`
	Marker    Marker    `json:"marker"`
}

// Blocked - непроходима ли клетка
func (t *Tile) Blocked() bool {
	return t.Terrain.Blocked
}

// Opaque - загораживает ли клетка обзор
func (t *Tile) Opaque() bool {
	return t.Terrain.Opaque
}

// Glyphs возвращает стопку глифов для отрисовки.
// animate выбирает второй кадр анимации, remembered рисует клетку из памяти:
// приглушённая подложка без обитателей (рамка прицела остаётся).
func (t *Tile) Glyphs(animate, remembered bool) []types.Glyph {
	base := t.Terrain.Glyph
	if animate && t.Terrain.Alt != types.Blank {
		base = t.Terrain.Alt
	}
	if remembered {
		if t.Marker != MarkerNone {
			return []types.Glyph{base.Dim(), t.Marker.Glyph()}
		}
		return []types.Glyph{base.Dim()}
	}

	glyphs := make([]types.Glyph, 0, len(t.Occupants)+2)
	glyphs = append(glyphs, base)
	for _, e := range t.Occupants {
		if g := e.Glyph(); g != types.Blank {
			glyphs = append(glyphs, g)
		}
	}
	if t.Marker != MarkerNone {
		glyphs = append(glyphs, t.Marker.Glyph())
	}
	return glyphs
}

func (t *Tile) addOccupant(e *Entity) {
	t.Occupants = append(t.Occupants, e)
}

// removeOccupant удаляет сущность, сохраняя порядок остальных.
func (t *Tile) removeOccupant(e *Entity) bool {
	for i, other := range t.Occupants {
		if other.ID == e.ID {
			copy(t.Occupants[i:], t.Occupants[i+1:])
			t.Occupants[len(t.Occupants)-1] = nil
			t.Occupants = t.Occupants[:len(t.Occupants)-1]
			return true
		}
	}
	return false
}
