package domain

import (
	"rotten-soup/internal/core/types"
	"rotten-soup/internal/core/types/enums"
)

// Entity - любой объект уровня: игрок, монстр, сундук, лестница, предмет.
type Entity struct {
	ID   types.EntityID   `json:"id"`
	Kind enums.EntityKind `json:"kind"`
	Name string           `json:"name"`
	Pos  Position         `json:"pos"`

	// Schedulable - участвует ли сущность в круговом планировщике ходов
	Schedulable bool `json:"schedulable"`

	// Компоненты (Если nil - значит свойство отсутствует)
	Render    *RenderComponent    `json:"render,omitempty"`
	Vision    *VisionComponent    `json:"vision,omitempty"`
	AI        *AIComponent        `json:"ai,omitempty"`
	Inventory *InventoryComponent `json:"inventory,omitempty"`
	Item      *ItemComponent      `json:"item,omitempty"`
	Container *ContainerComponent `json:"container,omitempty"`
	Trigger   *TriggerComponent   `json:"trigger,omitempty"`
	Player    *PlayerComponent    `json:"player,omitempty"`
}

// NewEntity создает сущность. Без идентификатора сущность не существует.
func NewEntity(id types.EntityID, kind enums.EntityKind, name string, pos Position) (*Entity, error) {
	if id.IsNil() {
		return nil, &InvalidEntityError{Name: name}
	}
	return &Entity{ID: id, Kind: kind, Name: name, Pos: pos}, nil
}

// IsHostile - враждебна ли сущность игроку
func (e *Entity) IsHostile() bool {
	return e.AI != nil && e.AI.IsHostile
}

// IsPlayer - управляется ли сущность игроком
func (e *Entity) IsPlayer() bool {
	return e.Player != nil
}

// DisplayName - имя для описаний. Предметы называются по своему типу.
func (e *Entity) DisplayName() string {
	if e.Item != nil && e.Item.Type != "" {
		return e.Item.Type
	}
	return e.Name
}

// Glyph возвращает глиф сущности или Blank, если она не рисуется.
func (e *Entity) Glyph() types.Glyph {
	if e.Render == nil {
		return types.Blank
	}
	return e.Render.Glyph
}
