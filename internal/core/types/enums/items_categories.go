package enums

import "strings"

// ItemCategory группирует предметы из таблиц добычи.
type ItemCategory uint8

const (
	ItemCategoryUnknown ItemCategory = iota // 0
	ItemCategoryWeapon                      // 1
	ItemCategoryPotion                      // 2
	ItemCategoryAmmo                        // 3
)

var itemCategoryToString = map[ItemCategory]string{
	ItemCategoryWeapon: "WEAPON",
	ItemCategoryPotion: "POTION",
	ItemCategoryAmmo:   "AMMO",
}

var itemCategoryStringToType = map[string]ItemCategory{
	"WEAPON": ItemCategoryWeapon,
	"POTION": ItemCategoryPotion,
	"AMMO":   ItemCategoryAmmo,
}

func (c ItemCategory) String() string {
	if val, ok := itemCategoryToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseItemCategory(s string) ItemCategory {
	if val, ok := itemCategoryStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return ItemCategoryUnknown
}
