package domain

import (
	"strings"

	"rotten-soup/internal/core/types"
)

// LevelStyle - вид генерации уровня
type LevelStyle uint8

const (
	StyleDungeon LevelStyle = iota
	StyleCave
	StyleOverworld
)

func (s LevelStyle) String() string {
	switch s {
	case StyleCave:
		return "cave"
	case StyleOverworld:
		return "overworld"
	}
	return "dungeon"
}

// StyleForLevel выбирает вид и размер уровня по имени: пещеры 80x40, подземелья 40x40.
func StyleForLevel(name string) (LevelStyle, int, int) {
	switch {
	case strings.Contains(name, "cave"):
		return StyleCave, 80, 40
	case strings.Contains(name, "overworld"):
		return StyleOverworld, 60, 40
	}
	return StyleDungeon, 40, 40
}

// GenerateRequest - параметры внешнего генератора карт.
type GenerateRequest struct {
	Name      string
	Style     LevelStyle
	Width     int
	Height    int
	Depth     int
	Direction string // "up" / "down" - откуда пришёл игрок
	Source    string // имя уровня-источника; пусто для стартового
	Seed      int64
}

// LevelData - сырые данные уровня от генератора.
type LevelData struct {
	Width   int
	Height  int
	Terrain [][]Terrain // [y][x]
	Actors  []*Entity
	Arrival Position
}

// LootEntry - строка взвешенной таблицы добычи
type LootEntry struct {
	Type   string `yaml:"type" json:"type"`
	Weight int    `yaml:"weight" json:"weight"`
}

// LootTable - взвешенная таблица. Порядок строк задаёт детерминизм броска.
type LootTable []LootEntry

// TotalWeight - сумма весов
func (t LootTable) TotalWeight() int {
	total := 0
	for _, e := range t {
		total += e.Weight
	}
	return total
}

// Materialize проверяет сырые данные и собирает из них Level.
// Сущности, не влезающие в сетку, приводят к BoundsError.
func (d *LevelData) Materialize(name string, depth int) (*Level, error) {
	lvl := NewLevel(name, d.Width, d.Height, Terrain{})
	lvl.Depth = depth
	for y := 0; y < d.Height && y < len(d.Terrain); y++ {
		for x := 0; x < d.Width && x < len(d.Terrain[y]); x++ {
			lvl.tiles[y][x].Terrain = d.Terrain[y][x]
		}
	}
	for _, e := range d.Actors {
		if err := lvl.AddActor(e); err != nil {
			return nil, err
		}
	}
	if !lvl.InBounds(d.Arrival.X, d.Arrival.Y) {
		return nil, &BoundsError{Level: name, Pos: d.Arrival, Width: d.Width, Height: d.Height}
	}
	lvl.PlayerArrival = d.Arrival
	return lvl, nil
}

// Glyph-палитра подложек, общая для генератора и тестов.
var (
	TerrainFloor = Terrain{Name: "floor", Glyph: types.MakeGlyph(0x9E9E9E, '.')}
	TerrainWall  = Terrain{Name: "wall", Blocked: true, Opaque: true, Glyph: types.MakeGlyph(0xC0C0C0, '#')}
	TerrainGrass = Terrain{Name: "grass", Glyph: types.MakeGlyph(0x3CB043, '"')}
	TerrainTree  = Terrain{Name: "tree", Blocked: true, Opaque: true, Glyph: types.MakeGlyph(0x0B6623, 'T')}
	TerrainWater = Terrain{Name: "water", Blocked: true, Glyph: types.MakeGlyph(0x1E90FF, '~'), Alt: types.MakeGlyph(0x4169E1, '~')}
	TerrainRock  = Terrain{Name: "rock", Blocked: true, Opaque: true, Glyph: types.MakeGlyph(0x8B7355, '#')}
	TerrainDirt  = Terrain{Name: "dirt", Glyph: types.MakeGlyph(0x8B5A2B, '.')}
)

// Arrival - откуда игрок пришёл на уровень. Передаётся генератору.
type Arrival struct {
	Direction string // "up" / "down"
	Source    string // имя уровня, с которого пришли
}
