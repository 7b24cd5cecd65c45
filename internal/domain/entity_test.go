package domain

import (
	"errors"
	"testing"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/core/types/enums"
)

func TestNewEntity_RequiresID(t *testing.T) {
	_, err := NewEntity(types.NilEntityID, enums.EntityKindMonster, "Goblin", Position{})
	if err == nil {
		t.Fatal("expected error for nil id")
	}

	var invalid *InvalidEntityError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidEntityError, got %T", err)
	}
	if invalid.Name != "Goblin" {
		t.Errorf("InvalidEntityError.Name = %q, want Goblin", invalid.Name)
	}

	e, err := NewEntity(types.PackEntityID(0, 2, 0, 1), enums.EntityKindMonster, "Goblin", Position{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Pos != (Position{X: 1, Y: 2}) {
		t.Errorf("Pos = %v", e.Pos)
	}
}

func TestEntity_DisplayName(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   string
	}{
		{"monster uses name", Entity{Name: "Goblin"}, "Goblin"},
		{"item uses type", Entity{Name: "Fizzing flask", Item: &ItemComponent{Type: "Strength Potion"}}, "Strength Potion"},
		{"item without type falls back", Entity{Name: "Rock", Item: &ItemComponent{}}, "Rock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entity.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEntity_IsHostile(t *testing.T) {
	if (&Entity{}).IsHostile() {
		t.Error("entity without AI must not be hostile")
	}
	if !(&Entity{AI: &AIComponent{IsHostile: true}}).IsHostile() {
		t.Error("hostile AI must be hostile")
	}
}

func TestLogCategory_Color(t *testing.T) {
	tests := []struct {
		category LogCategory
		want     string
	}{
		{LogMagic, "#3C1CFD"},
		{LogPlayerMove, "grey"},
		{LogAlert, "orange"},
		{LogCategory("purple"), "purple"},
	}

	for _, tt := range tests {
		if got := tt.category.Color(); got != tt.want {
			t.Errorf("%q.Color() = %q, want %q", tt.category, got, tt.want)
		}
	}
}
