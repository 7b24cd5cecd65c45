package dungeon

import (
	"rotten-soup/internal/core/types"
	"rotten-soup/internal/core/types/enums"
	"rotten-soup/internal/domain"
)

const (
	ladderColor = 0xFFFFFF
	chestColor  = 0xDAA520

	chestMinItems = 1
	chestMaxItems = 4
	chestTable    = "chest"
)

// Factory выдаёт сущности уровня с идентификаторами общего аллокатора.
type Factory struct {
	ids *types.IDAllocator
}

func NewFactory(ids *types.IDAllocator) *Factory {
	return &Factory{ids: ids}
}

func (f *Factory) entity(depth int, kind enums.EntityKind, name string, pos domain.Position) *domain.Entity {
	// Аллокатор никогда не выдаёт нулевой ID, ошибки здесь быть не может
	e, _ := domain.NewEntity(f.ids.Next(uint8(depth), uint8(kind)), kind, name, pos)
	return e
}

// Ladder создает лестницу с триггером перехода на target.
func (f *Factory) Ladder(depth int, pos domain.Position, direction, target string) *domain.Entity {
	name, char := "ladder down", byte('>')
	if direction == "up" {
		name, char = "ladder up", '<'
	}
	e := f.entity(depth, enums.EntityKindLadder, name, pos)
	e.Render = &domain.RenderComponent{Glyph: types.MakeGlyph(ladderColor, char)}
	e.Trigger = domain.TransitionTrigger(target, direction)
	return e
}

// Chest создает пустой сундук. Сессия наполнит его при создании уровня.
func (f *Factory) Chest(depth int, pos domain.Position) *domain.Entity {
	e := f.entity(depth, enums.EntityKindChest, "chest", pos)
	e.Render = &domain.RenderComponent{Glyph: types.MakeGlyph(chestColor, '=')}
	e.Container = &domain.ContainerComponent{
		MinItems: chestMinItems,
		MaxItems: chestMaxItems,
		Table:    chestTable,
	}
	e.Inventory = &domain.InventoryComponent{}
	return e
}

// Monster создает монстра из шаблона. Монстры ходят в планировщике.
func (f *Factory) Monster(depth int, pos domain.Position, t MonsterTemplate) *domain.Entity {
	e := f.entity(depth, enums.EntityKindMonster, t.Name, pos)
	e.Schedulable = true
	e.Render = &domain.RenderComponent{Glyph: t.glyph}
	e.AI = &domain.AIComponent{
		IsHostile:   t.Hostile,
		AggroRadius: t.Aggro,
		State:       enums.AIStateIdle,
	}
	return e
}

// Item создает предмет. Предмет в контейнере хранит координаты контейнера.
func (f *Factory) Item(pos domain.Position, t *ItemTemplate) *domain.Entity {
	e := f.entity(0, enums.EntityKindItem, t.Type, pos)
	e.Render = &domain.RenderComponent{Glyph: t.glyph}
	e.Item = &domain.ItemComponent{Type: t.Type, Category: t.category}
	return e
}
