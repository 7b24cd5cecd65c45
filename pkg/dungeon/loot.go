package dungeon

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/domain"
	"rotten-soup/pkg/logger"
	"rotten-soup/pkg/utils"
)

// Loot бросает взвешенные таблицы добычи. Реализует engine.LootRoller.
type Loot struct {
	catalog *Catalog
	factory *Factory
	rng     *rand.Rand
	logger  *logrus.Entry
}

func NewLoot(catalog *Catalog, ids *types.IDAllocator, seed int64) *Loot {
	return &Loot{
		catalog: catalog,
		factory: NewFactory(ids),
		rng:     utils.NewRand(seed),
		logger:  logger.Log.WithField("component", "loot_table"),
	}
}

// Table ищет таблицу по имени
func (l *Loot) Table(name string) (domain.LootTable, bool) {
	t, ok := l.catalog.Tables[name]
	return t, ok
}

// Roll выдаёт от min до max предметов из таблицы. Каждый предмет
// выбирается независимо, с весом строки. Предметы получают координаты (x, y).
func (l *Loot) Roll(min, max int, table domain.LootTable, x, y int) []*domain.Entity {
	if min < 0 {
		min = 0
	}
	if table.TotalWeight() <= 0 {
		return nil
	}

	weights := make([]int, len(table))
	for i, e := range table {
		weights[i] = e.Weight
	}

	n := utils.RandRange(l.rng, min, max)
	items := make([]*domain.Entity, 0, n)
	pos := domain.Position{X: x, Y: y}
	for i := 0; i < n; i++ {
		entry := table[utils.WeightedIndex(l.rng, weights)]
		tmpl, ok := l.catalog.Items[entry.Type]
		if !ok {
			l.logger.WithField("type", entry.Type).Warn("Loot entry has no item template, skipped")
			continue
		}
		items = append(items, l.factory.Item(pos, tmpl))
	}

	l.logger.WithFields(logrus.Fields{
		"pos":   pos,
		"items": len(items),
	}).Debug("Loot rolled")
	return items
}
