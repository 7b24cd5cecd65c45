package domain

import (
	"errors"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"rotten-soup/internal/core/types"
)

func newTestEntity(serial uint32, name string, pos Position) *Entity {
	return &Entity{ID: types.PackEntityID(0, 0, 0, serial), Name: name, Pos: pos}
}

func TestLevel_AddRemoveActor(t *testing.T) {
	lvl := NewLevel("test", 10, 10, TerrainFloor)

	a := newTestEntity(1, "a", Position{X: 5, Y: 5})
	b := newTestEntity(2, "b", Position{X: 5, Y: 5})
	c := newTestEntity(3, "c", Position{X: 5, Y: 5})

	for _, e := range []*Entity{a, b, c} {
		if err := lvl.AddActor(e); err != nil {
			t.Fatalf("AddActor: %v", err)
		}
	}

	if got := lvl.Actor(b.ID); got != b {
		t.Errorf("Actor() returned %v, want %v", got, b)
	}

	lvl.RemoveActor(b)

	if lvl.Actor(b.ID) != nil {
		t.Error("entity should be gone from registry after removal")
	}

	occupants := lvl.ActorsAt(5, 5)
	if len(occupants) != 2 || occupants[0] != a || occupants[1] != c {
		t.Errorf("occupant order not preserved: %v", occupants)
	}

	actors := lvl.Actors()
	if len(actors) != 2 || actors[0] != a || actors[1] != c {
		t.Errorf("registry order not preserved: %v", actors)
	}
}

func TestLevel_TileAtBounds(t *testing.T) {
	lvl := NewLevel("bounds", 4, 3, TerrainFloor)

	tests := []struct {
		x, y    int
		wantErr bool
	}{
		{0, 0, false},
		{3, 2, false},
		{4, 0, true},
		{0, 3, true},
		{-1, 1, true},
	}

	for _, tt := range tests {
		_, err := lvl.TileAt(tt.x, tt.y)
		if (err != nil) != tt.wantErr {
			t.Errorf("TileAt(%d,%d) error = %v, wantErr %v", tt.x, tt.y, err, tt.wantErr)
		}
		if err != nil {
			var be *BoundsError
			if !errors.As(err, &be) {
				t.Errorf("TileAt(%d,%d) error type = %T, want *BoundsError", tt.x, tt.y, err)
			}
		}
	}

	if got := lvl.ActorsAt(10, 10); got != nil {
		t.Errorf("ActorsAt out of bounds = %v, want nil", got)
	}
}

func TestLevel_MoveActor(t *testing.T) {
	lvl := NewLevel("move", 5, 5, TerrainFloor)
	e := newTestEntity(1, "rat", Position{X: 1, Y: 1})
	_ = lvl.AddActor(e)

	if err := lvl.MoveActor(e, Position{X: 2, Y: 1}); err != nil {
		t.Fatalf("MoveActor: %v", err)
	}
	if len(lvl.ActorsAt(1, 1)) != 0 {
		t.Error("old tile still holds the entity")
	}
	if got := lvl.ActorsAt(2, 1); len(got) != 1 || got[0] != e {
		t.Errorf("new tile occupants = %v", got)
	}

	if err := lvl.MoveActor(e, Position{X: 9, Y: 9}); err == nil {
		t.Error("expected bounds error")
	}
	if e.Pos != (Position{X: 2, Y: 1}) {
		t.Errorf("failed move changed position to %v", e.Pos)
	}
}

func setOf(ps ...Position) mapset.Set[Position] {
	s := mapset.New[Position]()
	for _, p := range ps {
		s.Put(p)
	}
	return s
}

func TestLevel_UpdateVisibility_MergeThenReplace(t *testing.T) {
	lvl := NewLevel("fog", 10, 10, TerrainFloor)

	frames := []mapset.Set[Position]{
		setOf(Position{X: 1, Y: 1}, Position{X: 2, Y: 1}),
		setOf(Position{X: 5, Y: 5}),
		setOf(Position{X: 8, Y: 8}, Position{X: 20, Y: 20}), // (20,20) за границей
	}

	union := mapset.New[Position]()
	prevSeen := 0
	for i, frame := range frames {
		lvl.UpdateVisibility(frame)
		frame.Each(func(p Position) {
			if lvl.InBounds(p.X, p.Y) {
				union.Put(p)
			}
		})

		seen := lvl.SeenTiles()
		union.Each(func(p Position) {
			if !seen.Has(p) {
				t.Errorf("frame %d: seen tiles lost %v", i, p)
			}
		})
		if seen.Size() < prevSeen {
			t.Errorf("frame %d: seen shrank from %d to %d", i, prevSeen, seen.Size())
		}
		prevSeen = seen.Size()
	}

	visible := lvl.VisibleTiles()
	if visible.Size() != 1 || !visible.Has(Position{X: 8, Y: 8}) {
		t.Errorf("visible must be replaced wholesale and clipped, got size %d", visible.Size())
	}
	if lvl.IsVisible(Position{X: 1, Y: 1}) {
		t.Error("stale tile still visible")
	}
	if !lvl.IsSeen(Position{X: 1, Y: 1}) {
		t.Error("stale tile must be remembered")
	}
}

func TestLevelData_Materialize(t *testing.T) {
	terrain := [][]Terrain{
		{TerrainWall, TerrainWall, TerrainWall},
		{TerrainWall, TerrainFloor, TerrainWall},
		{TerrainWall, TerrainWall, TerrainWall},
	}
	chest := newTestEntity(1, "Chest", Position{X: 1, Y: 1})

	data := &LevelData{Width: 3, Height: 3, Terrain: terrain, Actors: []*Entity{chest}, Arrival: Position{X: 1, Y: 1}}
	lvl, err := data.Materialize("dungeon-1", 1)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	if lvl.Revealed {
		t.Error("generated level must start unrevealed")
	}
	if lvl.PlayerArrival != (Position{X: 1, Y: 1}) {
		t.Errorf("PlayerArrival = %v", lvl.PlayerArrival)
	}
	tile, _ := lvl.TileAt(0, 0)
	if !tile.Blocked() || !tile.Opaque() {
		t.Error("wall terrain not copied")
	}
	if got := lvl.ActorsAt(1, 1); len(got) != 1 || got[0] != chest {
		t.Errorf("chest not placed: %v", got)
	}

	bad := &LevelData{Width: 2, Height: 2, Arrival: Position{X: 5, Y: 5}}
	if _, err := bad.Materialize("bad", 1); err == nil {
		t.Error("expected bounds error for arrival outside grid")
	}
}

func TestTile_Glyphs(t *testing.T) {
	tile := Tile{Terrain: TerrainWater}
	goblin := &Entity{Render: &RenderComponent{Glyph: types.MakeGlyph(0x00FF00, 'g')}}
	tile.addOccupant(goblin)
	tile.Marker = MarkerUntargetable

	got := tile.Glyphs(false, false)
	if len(got) != 3 || got[0] != TerrainWater.Glyph || got[1] != goblin.Render.Glyph || got[2] != MarkerUntargetable.Glyph() {
		t.Errorf("Glyphs() = %v", got)
	}

	animated := tile.Glyphs(true, false)
	if animated[0] != TerrainWater.Alt {
		t.Errorf("animated frame = %v, want alt glyph", animated[0])
	}

	remembered := tile.Glyphs(false, true)
	if len(remembered) != 2 || remembered[0] != TerrainWater.Glyph.Dim() || remembered[1] != MarkerUntargetable.Glyph() {
		t.Errorf("remembered tile = %v, want dimmed terrain and marker", remembered)
	}

	tile.Marker = MarkerNone
	if got := tile.Glyphs(false, true); len(got) != 1 {
		t.Errorf("remembered tile without marker = %v", got)
	}
}

func TestPosition_Helpers(t *testing.T) {
	p := Position{X: 3, Y: 4}
	if p.DistanceTo(Position{}) != 5 {
		t.Errorf("DistanceTo = %v, want 5", p.DistanceTo(Position{}))
	}
	if !p.IsAdjacent(Position{X: 4, Y: 5}) || p.IsAdjacent(p) {
		t.Error("IsAdjacent wrong")
	}
	if dx, dy := p.DirectionTo(Position{X: 0, Y: 9}); dx != -1 || dy != 1 {
		t.Errorf("DirectionTo = (%d,%d)", dx, dy)
	}
}

func TestStyleForLevel(t *testing.T) {
	tests := []struct {
		name  string
		style LevelStyle
		w, h  int
	}{
		{"cave-1", StyleCave, 80, 40},
		{"dungeon-3", StyleDungeon, 40, 40},
		{"crypt", StyleDungeon, 40, 40},
		{"overworld", StyleOverworld, 60, 40},
	}

	for _, tt := range tests {
		style, w, h := StyleForLevel(tt.name)
		if style != tt.style || w != tt.w || h != tt.h {
			t.Errorf("StyleForLevel(%q) = %v %dx%d, want %v %dx%d", tt.name, style, w, h, tt.style, tt.w, tt.h)
		}
	}
}
