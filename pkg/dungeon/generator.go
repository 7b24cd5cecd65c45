package dungeon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/domain"
	"rotten-soup/pkg/logger"
)

const (
	overworldName = "overworld"
	minLevelSide  = MaxSize + 3

	dungeonMaxRooms = 12
	dungeonChests   = 2
	caveChests      = 3
	caveMonsterArea = 400 // один монстр на столько клеток пещеры
	exitOffset      = 4   // расстояние от центра поляны до спусков
)

// Generator строит уровни по стилю из запроса. Реализует engine.LevelGenerator.
type Generator struct {
	catalog *Catalog
	factory *Factory
	logger  *logrus.Entry
}

// NewGenerator создает генератор. ids общий с сессией и таблицей добычи.
func NewGenerator(catalog *Catalog, ids *types.IDAllocator) *Generator {
	return &Generator{
		catalog: catalog,
		factory: NewFactory(ids),
		logger:  logger.Log.WithField("component", "dungeon_generator"),
	}
}

// Generate создает новый уровень
func (g *Generator) Generate(req domain.GenerateRequest) (*domain.LevelData, error) {
	if req.Width < minLevelSide || req.Height < minLevelSide {
		return nil, fmt.Errorf("level %s: size %dx%d is too small", req.Name, req.Width, req.Height)
	}

	b := NewLevel(req, g.factory, g.catalog)

	switch req.Style {
	case domain.StyleOverworld:
		b.WithSurface()
		center := domain.Position{X: req.Width / 2, Y: req.Height / 2}
		b.PlaceExitAt(center.Shift(-exitOffset, 0), "down", "dungeon-1").
			PlaceExitAt(center.Shift(exitOffset, 0), "down", "cave-1").
			PlaceChests(1)

	case domain.StyleCave:
		b.WithCave().
			PlaceExit("up", NeighbourLevel(req.Name, "up")).
			PlaceExit("down", NeighbourLevel(req.Name, "down")).
			SpawnMonsters(req.Width * req.Height / caveMonsterArea).
			PlaceChests(caveChests)

	default:
		b.WithRooms(dungeonMaxRooms).
			PlaceExit("up", NeighbourLevel(req.Name, "up")).
			PlaceExit("down", NeighbourLevel(req.Name, "down"))
		b.SpawnMonsters(max(2, b.RoomCount()-1)).
			PlaceChests(dungeonChests)
	}

	data, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", req.Name, err)
	}

	g.logger.WithFields(logrus.Fields{
		"level":   req.Name,
		"style":   req.Style,
		"seed":    req.Seed,
		"rooms":   b.RoomCount(),
		"actors":  len(data.Actors),
		"arrival": data.Arrival,
	}).Debug("Level generated")
	return data, nil
}

// NeighbourLevel возвращает имя соседнего уровня той же ветки:
// "dungeon-2" вниз - "dungeon-3", вверх - "dungeon-1", а с первого этажа
// вверх ведёт поверхность.
func NeighbourLevel(name, direction string) string {
	branch, n := splitLevelName(name)
	if direction == "up" {
		if n <= 1 {
			return overworldName
		}
		return fmt.Sprintf("%s-%d", branch, n-1)
	}
	return fmt.Sprintf("%s-%d", branch, n+1)
}

func splitLevelName(name string) (string, int) {
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return name, 0
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return name, 0
	}
	return name[:i], n
}
