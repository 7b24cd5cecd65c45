package domain

import (
	"github.com/zyedidia/generic/mapset"

	"rotten-soup/internal/core/types"
)

// Level - состояние одного уровня: сетка клеток, реестр сущностей,
// множество видимых сейчас клеток и память тумана войны.
type Level struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Depth  int    `json:"depth"`

	// Revealed отключает туман войны: все клетки рисуются как увиденные.
	Revealed bool `json:"revealed"`
	// PlayerArrival - куда ставить игрока при входе на уровень.
	PlayerArrival Position `json:"playerArrival"`

	tiles [][]Tile

	// Реестр: ID -> сущность, плюс порядок добавления
	actors map[types.EntityID]*Entity
	order  []types.EntityID

	visible mapset.Set[Position]
	seen    mapset.Set[Position]
}

// NewLevel создает уровень, залитый одной подложкой.
func NewLevel(name string, width, height int, fill Terrain) *Level {
	tiles := make([][]Tile, height)
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			row[x] = Tile{Pos: Position{X: x, Y: y}, Terrain: fill}
		}
		tiles[y] = row
	}

	return &Level{
		Name:    name,
		Width:   width,
		Height:  height,
		tiles:   tiles,
		actors:  make(map[types.EntityID]*Entity),
		visible: mapset.New[Position](),
		seen:    mapset.New[Position](),
	}
}

// InBounds проверяет, лежит ли координата внутри сетки
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.Width && y < l.Height
}

// TileAt возвращает клетку или BoundsError.
func (l *Level) TileAt(x, y int) (*Tile, error) {
	if !l.InBounds(x, y) {
		return nil, &BoundsError{Level: l.Name, Pos: Position{X: x, Y: y}, Width: l.Width, Height: l.Height}
	}
	return &l.tiles[y][x], nil
}

// SetTerrain меняет подложку клетки
func (l *Level) SetTerrain(x, y int, t Terrain) error {
	tile, err := l.TileAt(x, y)
	if err != nil {
		return err
	}
	tile.Terrain = t
	return nil
}

// ActorsAt возвращает копию списка обитателей клетки. За границами - nil.
func (l *Level) ActorsAt(x, y int) []*Entity {
	if !l.InBounds(x, y) {
		return nil
	}
	occupants := l.tiles[y][x].Occupants
	out := make([]*Entity, len(occupants))
	copy(out, occupants)
	return out
}

// AddActor регистрирует сущность и ставит её на клетку e.Pos
func (l *Level) AddActor(e *Entity) error {
	tile, err := l.TileAt(e.Pos.X, e.Pos.Y)
	if err != nil {
		return err
	}
	if _, ok := l.actors[e.ID]; !ok {
		l.order = append(l.order, e.ID)
	}
	l.actors[e.ID] = e
	tile.addOccupant(e)
	return nil
}

// RemoveActor снимает сущность с клетки и удаляет из реестра.
// На старой клетке не остаётся висячей ссылки.
func (l *Level) RemoveActor(e *Entity) {
	if l.InBounds(e.Pos.X, e.Pos.Y) {
		l.tiles[e.Pos.Y][e.Pos.X].removeOccupant(e)
	}
	if _, ok := l.actors[e.ID]; !ok {
		return
	}
	delete(l.actors, e.ID)
	for i, id := range l.order {
		if id == e.ID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// MoveActor переносит сущность на другую клетку
func (l *Level) MoveActor(e *Entity, to Position) error {
	dst, err := l.TileAt(to.X, to.Y)
	if err != nil {
		return err
	}
	if l.InBounds(e.Pos.X, e.Pos.Y) {
		l.tiles[e.Pos.Y][e.Pos.X].removeOccupant(e)
	}
	e.Pos = to
	dst.addOccupant(e)
	return nil
}

// Actor ищет сущность по ID
func (l *Level) Actor(id types.EntityID) *Entity {
	return l.actors[id]
}

// Actors возвращает сущности уровня в порядке добавления
func (l *Level) Actors() []*Entity {
	out := make([]*Entity, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.actors[id])
	}
	return out
}

// IsVisible - видна ли клетка после последнего пересчёта
func (l *Level) IsVisible(p Position) bool {
	return l.visible.Has(p)
}

// IsSeen - видел ли игрок клетку хоть раз, пока уровень был активен
func (l *Level) IsSeen(p Position) bool {
	return l.seen.Has(p) || l.visible.Has(p)
}

// VisibleTiles возвращает копию множества видимых клеток
func (l *Level) VisibleTiles() mapset.Set[Position] {
	return cloneSet(l.visible)
}

// SeenTiles возвращает копию памяти: всё, что было видно когда-либо,
// включая текущий кадр.
func (l *Level) SeenTiles() mapset.Set[Position] {
	out := cloneSet(l.seen)
	l.visible.Each(func(p Position) { out.Put(p) })
	return out
}

// UpdateVisibility сначала сливает прошлый кадр в память, затем заменяет
// видимое множество целиком. Порядок важен: ни один кадр не теряется.
func (l *Level) UpdateVisibility(next mapset.Set[Position]) {
	l.visible.Each(func(p Position) { l.seen.Put(p) })

	visible := mapset.New[Position]()
	next.Each(func(p Position) {
		if l.InBounds(p.X, p.Y) {
			visible.Put(p)
		}
	})
	l.visible = visible
}

func cloneSet(s mapset.Set[Position]) mapset.Set[Position] {
	out := mapset.New[Position]()
	s.Each(func(p Position) { out.Put(p) })
	return out
}
