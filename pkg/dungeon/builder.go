package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"rotten-soup/internal/domain"
	"rotten-soup/pkg/utils"
)

// Константы генерации комнат
const (
	MinSize = 4
	MaxSize = 10
)

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() domain.Position {
	return domain.Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// LevelBuilder предоставляет fluent API для создания уровней.
// Первая ошибка запоминается и возвращается из Build.
type LevelBuilder struct {
	req     domain.GenerateRequest
	rng     *rand.Rand
	factory *Factory
	catalog *Catalog

	grid  [][]domain.Terrain // [y][x]
	rooms []Rect
	start domain.Position

	actors   []*domain.Entity
	occupied mapset.Set[domain.Position]
	exits    map[string]domain.Position

	err error
}

// NewLevel создает builder для уровня. Зерно берётся из запроса.
func NewLevel(req domain.GenerateRequest, factory *Factory, catalog *Catalog) *LevelBuilder {
	b := &LevelBuilder{
		req:      req,
		rng:      utils.NewRand(req.Seed),
		factory:  factory,
		catalog:  catalog,
		occupied: mapset.New[domain.Position](),
		exits:    make(map[string]domain.Position),
		start:    domain.Position{X: req.Width / 2, Y: req.Height / 2},
	}
	b.fill(domain.TerrainWall)
	return b
}

func (b *LevelBuilder) fill(t domain.Terrain) {
	b.grid = make([][]domain.Terrain, b.req.Height)
	for y := range b.grid {
		row := make([]domain.Terrain, b.req.Width)
		for x := range row {
			row[x] = t
		}
		b.grid[y] = row
	}
}

func (b *LevelBuilder) inBounds(p domain.Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.req.Width && p.Y < b.req.Height
}

func (b *LevelBuilder) walkable(p domain.Position) bool {
	return b.inBounds(p) && !b.grid[p.Y][p.X].Blocked
}

func (b *LevelBuilder) set(p domain.Position, t domain.Terrain) {
	if b.inBounds(p) {
		b.grid[p.Y][p.X] = t
	}
}

// WithRooms генерирует комнаты и коридоры
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	b.fill(domain.TerrainWall)
	b.rooms = make([]Rect, 0, maxRooms)

	for i := 0; i < maxRooms; i++ {
		w := utils.RandRange(b.rng, MinSize, MaxSize)
		h := utils.RandRange(b.rng, MinSize, MaxSize)
		if w >= b.req.Width-2 || h >= b.req.Height-2 {
			continue
		}
		x := utils.RandRange(b.rng, 1, b.req.Width-w-1)
		y := utils.RandRange(b.rng, 1, b.req.Height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		b.carveRoom(newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prev := b.rooms[len(b.rooms)-1].Center()
			curr := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				b.carveHCorridor(prev.X, curr.X, prev.Y)
				b.carveVCorridor(prev.Y, curr.Y, curr.X)
			} else {
				b.carveVCorridor(prev.Y, curr.Y, prev.X)
				b.carveHCorridor(prev.X, curr.X, curr.Y)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	if len(b.rooms) == 0 {
		b.err = errors.New("no room fits into the level")
		return b
	}
	b.start = b.rooms[0].Center()
	return b
}

func (b *LevelBuilder) carveRoom(room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			b.grid[y][x] = domain.TerrainFloor
		}
	}
}

func (b *LevelBuilder) carveHCorridor(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		b.grid[y][x] = domain.TerrainFloor
	}
}

func (b *LevelBuilder) carveVCorridor(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		b.grid[y][x] = domain.TerrainFloor
	}
}

// Параметры клеточного автомата пещер
const (
	caveFillPercent = 45
	caveIterations  = 4
	caveAttempts    = 10
	caveMinOpen     = 20 // минимум открытой площади, % от уровня
)

// WithCave строит пещеру клеточным автоматом. Остаётся только самая большая
// связная область, остальные дыры засыпаются камнем.
func (b *LevelBuilder) WithCave() *LevelBuilder {
	area := b.req.Width * b.req.Height
	for attempt := 0; attempt < caveAttempts; attempt++ {
		b.fill(domain.TerrainRock)
		for y := 1; y < b.req.Height-1; y++ {
			for x := 1; x < b.req.Width-1; x++ {
				if b.rng.Intn(100) >= caveFillPercent {
					b.grid[y][x] = domain.TerrainDirt
				}
			}
		}
		for i := 0; i < caveIterations; i++ {
			b.smooth()
		}

		region := b.largestRegion()
		if region.Size()*100 < area*caveMinOpen {
			continue
		}
		b.keepOnly(region, domain.TerrainRock)
		b.start = b.anyIn(region)
		return b
	}

	b.err = fmt.Errorf("cave %s: no open region after %d attempts", b.req.Name, caveAttempts)
	return b
}

// smooth - один шаг автомата: клетка становится камнем, если вокруг
// не меньше пяти камней. Край карты считается камнем.
func (b *LevelBuilder) smooth() {
	next := make([][]domain.Terrain, b.req.Height)
	for y := range next {
		next[y] = make([]domain.Terrain, b.req.Width)
		for x := range next[y] {
			if x == 0 || y == 0 || x == b.req.Width-1 || y == b.req.Height-1 {
				next[y][x] = domain.TerrainRock
				continue
			}
			rocks := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if !b.walkable(domain.Position{X: x + dx, Y: y + dy}) {
						rocks++
					}
				}
			}
			if rocks >= 5 {
				next[y][x] = domain.TerrainRock
			} else {
				next[y][x] = domain.TerrainDirt
			}
		}
	}
	b.grid = next
}

// flood возвращает 4-связную область проходимых клеток вокруг from.
func (b *LevelBuilder) flood(from domain.Position) mapset.Set[domain.Position] {
	region := mapset.New[domain.Position]()
	if !b.walkable(from) {
		return region
	}
	queue := []domain.Position{from}
	region.Put(from)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := p.Shift(d[0], d[1])
			if b.walkable(n) && !region.Has(n) {
				region.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return region
}

func (b *LevelBuilder) largestRegion() mapset.Set[domain.Position] {
	best := mapset.New[domain.Position]()
	visited := mapset.New[domain.Position]()
	for y := 0; y < b.req.Height; y++ {
		for x := 0; x < b.req.Width; x++ {
			p := domain.Position{X: x, Y: y}
			if visited.Has(p) || !b.walkable(p) {
				continue
			}
			region := b.flood(p)
			region.Each(func(q domain.Position) { visited.Put(q) })
			if region.Size() > best.Size() {
				best = region
			}
		}
	}
	return best
}

// keepOnly засыпает всё проходимое вне region.
func (b *LevelBuilder) keepOnly(region mapset.Set[domain.Position], filler domain.Terrain) {
	for y := 0; y < b.req.Height; y++ {
		for x := 0; x < b.req.Width; x++ {
			p := domain.Position{X: x, Y: y}
			if b.walkable(p) && !region.Has(p) {
				b.grid[y][x] = filler
			}
		}
	}
}

// anyIn - первая клетка области в порядке строк
func (b *LevelBuilder) anyIn(region mapset.Set[domain.Position]) domain.Position {
	for y := 0; y < b.req.Height; y++ {
		for x := 0; x < b.req.Width; x++ {
			if p := (domain.Position{X: x, Y: y}); region.Has(p) {
				return p
			}
		}
	}
	return b.start
}

// freeCells - проходимые клетки без сущностей, в порядке строк.
func (b *LevelBuilder) freeCells(exclude func(domain.Position) bool) []domain.Position {
	var cells []domain.Position
	for y := 0; y < b.req.Height; y++ {
		for x := 0; x < b.req.Width; x++ {
			p := domain.Position{X: x, Y: y}
			if !b.walkable(p) || b.occupied.Has(p) {
				continue
			}
			if exclude != nil && exclude(p) {
				continue
			}
			cells = append(cells, p)
		}
	}
	return cells
}

// randomFree выбирает свободную клетку. ok=false, если мест нет.
func (b *LevelBuilder) randomFree(exclude func(domain.Position) bool) (domain.Position, bool) {
	cells := b.freeCells(exclude)
	if len(cells) == 0 {
		return domain.Position{}, false
	}
	return cells[b.rng.Intn(len(cells))], true
}

// randomInRoom выбирает свободную клетку внутри комнаты.
func (b *LevelBuilder) randomInRoom(room Rect) (domain.Position, bool) {
	return b.randomFree(func(p domain.Position) bool {
		return p.X <= room.X || p.Y <= room.Y || p.X >= room.X+room.W || p.Y >= room.Y+room.H
	})
}

func (b *LevelBuilder) place(e *domain.Entity) {
	b.actors = append(b.actors, e)
	b.occupied.Put(e.Pos)
}

// PlaceExit размещает лестницу. В комнатах лестница вверх стоит в первой
// комнате, вниз - в последней. В пещере - на случайной клетке.
func (b *LevelBuilder) PlaceExit(direction, target string) *LevelBuilder {
	if b.err != nil {
		return b
	}

	var pos domain.Position
	switch {
	case len(b.rooms) > 0 && direction == "up":
		pos = b.rooms[0].Center()
	case len(b.rooms) > 0:
		pos = b.rooms[len(b.rooms)-1].Center()
	default:
		p, ok := b.randomFree(nil)
		if !ok {
			b.err = fmt.Errorf("no room for %s exit on %s", direction, b.req.Name)
			return b
		}
		pos = p
	}

	// В единственной комнате обе лестницы не должны стоять на одной клетке
	if b.occupied.Has(pos) {
		p, ok := b.randomFree(nil)
		if !ok {
			b.err = fmt.Errorf("no room for %s exit on %s", direction, b.req.Name)
			return b
		}
		pos = p
	}

	return b.PlaceExitAt(pos, direction, target)
}

// PlaceExitAt ставит лестницу в заданную клетку
func (b *LevelBuilder) PlaceExitAt(pos domain.Position, direction, target string) *LevelBuilder {
	if b.err != nil {
		return b
	}
	if !b.walkable(pos) {
		b.err = fmt.Errorf("exit %s on %s: %v is not walkable", direction, b.req.Name, pos)
		return b
	}
	b.place(b.factory.Ladder(b.req.Depth, pos, direction, target))
	if _, ok := b.exits[direction]; !ok {
		b.exits[direction] = pos
	}
	return b
}

// arrival - куда ставить игрока: спустившийся встаёт на лестницу вверх,
// поднявшийся - на лестницу вниз.
func (b *LevelBuilder) arrival() domain.Position {
	switch b.req.Direction {
	case "down":
		if p, ok := b.exits["up"]; ok {
			return p
		}
	case "up":
		if p, ok := b.exits["down"]; ok {
			return p
		}
	}
	return b.start
}

// SpawnMonsters расставляет монстров каталога подальше от точки прибытия.
func (b *LevelBuilder) SpawnMonsters(count int) *LevelBuilder {
	if b.err != nil || b.catalog == nil {
		return b
	}
	templates := b.catalog.MonstersFor(b.req.Depth)
	if len(templates) == 0 {
		return b
	}
	weights := make([]int, len(templates))
	for i, t := range templates {
		weights[i] = t.Weight
	}

	arrival := b.arrival()
	tooClose := func(p domain.Position) bool {
		return p.DistanceSquaredTo(arrival) < safeRadius*safeRadius
	}

	for i := 0; i < count; i++ {
		var (
			pos domain.Position
			ok  bool
		)
		if len(b.rooms) > 1 {
			// Не в первой комнате
			pos, ok = b.randomInRoom(b.rooms[b.rng.Intn(len(b.rooms)-1)+1])
		} else {
			pos, ok = b.randomFree(tooClose)
		}
		if !ok {
			continue
		}
		t := templates[utils.WeightedIndex(b.rng, weights)]
		b.place(b.factory.Monster(b.req.Depth, pos, t))
	}
	return b
}

// safeRadius - монстры не появляются ближе этого к точке прибытия
const safeRadius = 6

// PlaceChests ставит сундуки со ссылкой на таблицу добычи.
func (b *LevelBuilder) PlaceChests(count int) *LevelBuilder {
	if b.err != nil {
		return b
	}
	for i := 0; i < count; i++ {
		var (
			pos domain.Position
			ok  bool
		)
		if len(b.rooms) > 0 {
			pos, ok = b.randomInRoom(b.rooms[b.rng.Intn(len(b.rooms))])
		} else {
			pos, ok = b.randomFree(nil)
		}
		if !ok {
			continue
		}
		b.place(b.factory.Chest(b.req.Depth, pos))
	}
	return b
}

// RoomCount - сколько комнат удалось вырезать
func (b *LevelBuilder) RoomCount() int {
	return len(b.rooms)
}

// Build собирает и возвращает данные уровня
func (b *LevelBuilder) Build() (*domain.LevelData, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &domain.LevelData{
		Width:   b.req.Width,
		Height:  b.req.Height,
		Terrain: b.grid,
		Actors:  b.actors,
		Arrival: b.arrival(),
	}, nil
}
