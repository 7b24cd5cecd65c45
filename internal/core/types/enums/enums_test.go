package enums

import "testing"

func TestParseEntityKind(t *testing.T) {
	tests := []struct {
		input    string
		expected EntityKind
	}{
		{"PLAYER", EntityKindPlayer},
		{"monster", EntityKindMonster},
		{"Chest", EntityKindChest},
		{"ladder", EntityKindLadder},
		{"dragon", EntityKindUnknown},
		{"", EntityKindUnknown},
	}

	for _, tt := range tests {
		if got := ParseEntityKind(tt.input); got != tt.expected {
			t.Errorf("ParseEntityKind(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestEntityKind_String(t *testing.T) {
	for kind, name := range entityKindToString {
		if got := ParseEntityKind(name); got != kind {
			t.Errorf("ParseEntityKind(%q) = %v, want %v", name, got, kind)
		}
	}
	if got := EntityKind(200).String(); got != "UNKNOWN" {
		t.Errorf("String() for unknown kind = %q", got)
	}
}

func TestParseItemCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected ItemCategory
	}{
		{"potion", ItemCategoryPotion},
		{"WEAPON", ItemCategoryWeapon},
		{"Ammo", ItemCategoryAmmo},
		{"food", ItemCategoryUnknown},
	}

	for _, tt := range tests {
		if got := ParseItemCategory(tt.input); got != tt.expected {
			t.Errorf("ParseItemCategory(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
