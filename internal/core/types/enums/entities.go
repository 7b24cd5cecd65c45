package enums

import "strings"

// EntityKind - вид сущности. Хранится в EntityID и в Entity.Kind.
type EntityKind uint8

const (
	EntityKindUnknown EntityKind = iota
	EntityKindPlayer
	EntityKindMonster
	EntityKindChest
	EntityKindLadder
	EntityKindDoor
	EntityKindItem
)

var entityKindToString = map[EntityKind]string{
	EntityKindPlayer:  "PLAYER",
	EntityKindMonster: "MONSTER",
	EntityKindChest:   "CHEST",
	EntityKindLadder:  "LADDER",
	EntityKindDoor:    "DOOR",
	EntityKindItem:    "ITEM",
}

var entityKindStringToKind = map[string]EntityKind{
	"PLAYER":  EntityKindPlayer,
	"MONSTER": EntityKindMonster,
	"CHEST":   EntityKindChest,
	"LADDER":  EntityKindLadder,
	"DOOR":    EntityKindDoor,
	"ITEM":    EntityKindItem,
}

// String возвращает строковое представление (для логов и дебага)
func (k EntityKind) String() string {
	if val, ok := entityKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityKind конвертирует строку в Enum (нужно для загрузки каталогов)
func ParseEntityKind(s string) EntityKind {
	if val, ok := entityKindStringToKind[strings.ToUpper(s)]; ok {
		return val
	}
	return EntityKindUnknown
}
