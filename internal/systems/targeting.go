package systems

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"rotten-soup/internal/domain"
	"rotten-soup/pkg/logger"
)

const untargetableNote = " This tile is out of range or blocked."

// TargetingWorld - то, что прицелу нужно знать о сессии.
type TargetingWorld interface {
	ActiveLevel() *domain.Level
	Player() *domain.Entity
	DisplaySize() (width, height int)
}

// Announcer принимает временное сообщение с описанием выбранной клетки.
type Announcer interface {
	LogTemp(text string, category domain.LogCategory)
	ClearTemp()
}

// Targeting - выбор клетки для дальнобойной атаки или заклинания.
//
// Состояния: ничего не выбрано / выбрана доступная клетка / выбрана недоступная.
// Классификация хранится в Tile.Marker выбранной клетки. На уровне всегда не
// больше одной клетки с рамкой: старая рамка снимается до установки новой.
type Targeting struct {
	world TargetingWorld
	log   Announcer

	selected *domain.Position
	path     []domain.Position
	pathSet  mapset.Set[domain.Position]

	// Снимок ближайших врагов для перебора. nil - снимка нет.
	cycle    []*domain.Entity
	cycleIdx int

	logger *logrus.Entry
}

// NewTargeting создает прицел поверх мира сессии.
func NewTargeting(world TargetingWorld, log Announcer) *Targeting {
	return &Targeting{
		world:   world,
		log:     log,
		pathSet: mapset.New[domain.Position](),
		logger:  logger.Log.WithField("component", "targeting_system"),
	}
}

// Selected возвращает выбранную клетку.
func (t *Targeting) Selected() (domain.Position, bool) {
	if t.selected == nil {
		return domain.Position{}, false
	}
	return *t.selected, true
}

// Target возвращает выбранную клетку, только если по ней можно стрелять.
func (t *Targeting) Target() (domain.Position, bool) {
	tile := t.selectedTile()
	if tile == nil || tile.Marker != domain.MarkerTargetable {
		return domain.Position{}, false
	}
	return *t.selected, true
}

// Path возвращает линию от игрока до цели без клетки игрока.
func (t *Targeting) Path() []domain.Position {
	return slices.Clone(t.path)
}

// OnPath - лежит ли клетка на подсвеченной линии
func (t *Targeting) OnPath(p domain.Position) bool {
	return t.pathSet.Has(p)
}

// SelectRelative сдвигает выбор на (dx, dy) от текущей цели, а без цели - от игрока.
// Выход за границы уровня ничего не меняет и возвращает false.
func (t *Targeting) SelectRelative(dx, dy int) bool {
	lvl := t.world.ActiveLevel()
	player := t.world.Player()
	if lvl == nil || player == nil {
		return false
	}

	base := player.Pos
	if t.selected != nil {
		base = *t.selected
	}

	candidate := base.Shift(dx, dy)
	if !lvl.InBounds(candidate.X, candidate.Y) {
		t.logger.WithField("candidate", candidate).Debug("Relative selection out of bounds, ignored.")
		return false
	}

	return t.selectExact(candidate, true)
}

// SelectExact выбирает клетку по абсолютным координатам.
// Без подсветки клетка всегда считается доступной, а линия не строится.
func (t *Targeting) SelectExact(pos domain.Position, highlight bool) bool {
	return t.selectExact(pos, highlight)
}

func (t *Targeting) selectExact(pos domain.Position, highlight bool) bool {
	lvl := t.world.ActiveLevel()
	player := t.world.Player()
	if lvl == nil || player == nil {
		return false
	}

	tile, err := lvl.TileAt(pos.X, pos.Y)
	if err != nil {
		return false
	}

	t.removeMarker()

	marker := domain.MarkerTargetable
	if highlight && (tile.Blocked() || !lvl.IsVisible(pos)) {
		marker = domain.MarkerUntargetable
	}
	tile.Marker = marker
	t.selected = &pos

	t.resetPath()
	if highlight && marker == domain.MarkerTargetable {
		t.path = Line(player.Pos, pos)
		for _, p := range t.path {
			t.pathSet.Put(p)
		}
	}

	t.logger.WithFields(logrus.Fields{
		"pos":    pos,
		"marker": marker,
		"path":   len(t.path),
	}).Debug("Tile selected.")

	t.log.LogTemp(t.Description(), domain.LogPlayerMove)
	return true
}

// Redraw заново ставит рамку и линию на текущую цель, например после
// перерисовки уровня или шага игрока.
func (t *Targeting) Redraw(highlight bool) bool {
	if t.selected == nil {
		return false
	}
	return t.selectExact(*t.selected, highlight)
}

// Clear снимает выбор и сбрасывает снимок перебора врагов.
func (t *Targeting) Clear() {
	t.clearSelection()
	t.cycle = nil
	t.cycleIdx = 0
}

func (t *Targeting) clearSelection() {
	t.removeMarker()
	t.resetPath()
	t.selected = nil
	t.log.ClearTemp()
}

func (t *Targeting) removeMarker() {
	if tile := t.selectedTile(); tile != nil {
		tile.Marker = domain.MarkerNone
	}
}

func (t *Targeting) resetPath() {
	t.path = nil
	t.pathSet = mapset.New[domain.Position]()
}

func (t *Targeting) selectedTile() *domain.Tile {
	if t.selected == nil {
		return nil
	}
	lvl := t.world.ActiveLevel()
	if lvl == nil {
		return nil
	}
	tile, err := lvl.TileAt(t.selected.X, t.selected.Y)
	if err != nil {
		return nil
	}
	return tile
}

// Describe перечисляет обитателей выбранной клетки.
func (t *Targeting) Describe() string {
	if t.selected == nil {
		return "nothing"
	}
	return DescribeOccupants(t.world.ActiveLevel().ActorsAt(t.selected.X, t.selected.Y))
}

// Description - строка осмотра для журнала.
func (t *Targeting) Description() string {
	note := ""
	player := t.world.Player()
	tile := t.selectedTile()
	if player != nil && player.Player != nil && player.Player.Aiming() &&
		tile != nil && tile.Marker == domain.MarkerUntargetable {
		note = untargetableNote
	}
	return fmt.Sprintf("[You see %s here.%s]", t.Describe(), note)
}

// NearbyEnemies возвращает враждебных сущностей на видимых клетках окна камеры,
// по возрастанию расстояния до игрока. При равенстве сохраняется порядок обхода.
func (t *Targeting) NearbyEnemies() []*domain.Entity {
	lvl := t.world.ActiveLevel()
	player := t.world.Player()
	if lvl == nil || player == nil {
		return nil
	}

	dw, dh := t.world.DisplaySize()
	cam := CameraWindow(lvl.Width, lvl.Height, dw, dh, player.Pos)

	var enemies []*domain.Entity
	for x := cam.X; x < cam.X+cam.Width; x++ {
		for y := cam.Y; y < cam.Y+cam.Height; y++ {
			p := domain.Position{X: x, Y: y}
			if !lvl.IsVisible(p) {
				continue
			}
			for _, e := range lvl.ActorsAt(x, y) {
				if e.IsHostile() {
					enemies = append(enemies, e)
				}
			}
		}
	}

	slices.SortStableFunc(enemies, func(a, b *domain.Entity) int {
		return cmp.Compare(a.Pos.DistanceSquaredTo(player.Pos), b.Pos.DistanceSquaredTo(player.Pos))
	})
	return enemies
}

// ClosestEnemy возвращает ближайшего видимого врага или nil.
func (t *Targeting) ClosestEnemy() *domain.Entity {
	enemies := t.NearbyEnemies()
	if len(enemies) == 0 {
		return nil
	}
	return enemies[0]
}

// SelectNearestEnemy снимает текущий выбор и выбирает ближайшего врага.
// Без врагов возвращает false: это не ошибка.
func (t *Targeting) SelectNearestEnemy() bool {
	t.Clear()
	enemy := t.ClosestEnemy()
	if enemy == nil {
		t.logger.Debug("No enemies nearby.")
		return false
	}
	return t.selectExact(enemy.Pos, true)
}

// CycleNearestEnemies переключает цель на следующего врага из снимка.
// Снимок делается при первом вызове и живёт до явного Clear.
// Если в снимке не больше одного врага, выбор не меняется.
func (t *Targeting) CycleNearestEnemies() bool {
	if t.cycle == nil {
		t.cycle = t.NearbyEnemies()
		t.cycleIdx = 0
	}
	if len(t.cycle) <= 1 {
		return false
	}

	t.clearSelection()
	t.cycleIdx = (t.cycleIdx + 1) % len(t.cycle)
	return t.selectExact(t.cycle[t.cycleIdx].Pos, true)
}
