package domain

import (
	"encoding/json"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/core/types/enums"
)

// --- КОМПОНЕНТЫ ---
// Сущность собирается из компонентов. Если компонент nil - свойство отсутствует.

// RenderComponent - Визуализация
type RenderComponent struct {
	Glyph types.Glyph `json:"glyph"`
}

// VisionComponent - радиус поля зрения (используется как радиус FOV игрока)
type VisionComponent struct {
	Radius int `json:"radius"`
}

// AIComponent - поведение монстра
type AIComponent struct {
	IsHostile   bool          `json:"isHostile"`
	AggroRadius int           `json:"aggroRadius"`
	State       enums.AIState `json:"state"`
}

// InventoryComponent - содержимое (сундук, рюкзак игрока)
type InventoryComponent struct {
	Items []*Entity `json:"items"`
}

// Add кладёт предметы в инвентарь в исходном порядке.
func (i *InventoryComponent) Add(items ...*Entity) {
	i.Items = append(i.Items, items...)
}

// ItemComponent - предмет. Type - имя типа предмета ("Strength Potion"),
// по нему предмет описывается при осмотре клетки.
type ItemComponent struct {
	Type     string             `json:"type"`
	Category enums.ItemCategory `json:"category"`
}

// ContainerComponent - контейнер добычи, который заполняется при создании уровня.
type ContainerComponent struct {
	MinItems int    `json:"minItems"`
	MaxItems int    `json:"maxItems"`
	Table    string `json:"table"`
}

// TriggerComponent описывает, что происходит при взаимодействии с сущностью.
type TriggerComponent struct {
	// OnInteract содержит JSON-объект события, которое сработает при команде INTERACT.
	// Например: {"event": "LEVEL_TRANSITION", "targetLevel": "cave-1", "direction": "down"}
	OnInteract json.RawMessage `json:"onInteract,omitempty"`
}

// PlayerMode - режим ввода игрока
type PlayerMode uint8

const (
	ModeExplore PlayerMode = iota
	ModeTargeting
	ModeCasting
)

func (m PlayerMode) String() string {
	switch m {
	case ModeTargeting:
		return "TARGETING"
	case ModeCasting:
		return "CASTING"
	}
	return "EXPLORE"
}

// PlayerComponent - отмечает сущность игрока
type PlayerComponent struct {
	Mode PlayerMode `json:"mode"`
}

// Aiming возвращает true в режимах прицеливания и заклинания.
func (p *PlayerComponent) Aiming() bool {
	return p.Mode == ModeTargeting || p.Mode == ModeCasting
}
