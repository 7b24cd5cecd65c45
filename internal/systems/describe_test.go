package systems

import (
	"testing"

	"rotten-soup/internal/domain"
)

func TestDescribeOccupants(t *testing.T) {
	goblin := &domain.Entity{Name: "Goblin"}
	rat := &domain.Entity{Name: "rat"}
	potion := &domain.Entity{Name: "flask", Item: &domain.ItemComponent{Type: "Strength Potion"}}
	player := &domain.Entity{Name: "Player", Player: &domain.PlayerComponent{}}

	tests := []struct {
		name      string
		occupants []*domain.Entity
		want      string
	}{
		{"empty", nil, "nothing"},
		{"only player", []*domain.Entity{player}, "nothing"},
		{"one", []*domain.Entity{goblin}, "a goblin"},
		{"two", []*domain.Entity{goblin, rat}, "a goblin and a rat"},
		{"three with oxford comma", []*domain.Entity{goblin, rat, potion}, "a goblin, a rat, and a strength potion"},
		{"player skipped", []*domain.Entity{player, goblin}, "a goblin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeOccupants(tt.occupants); got != tt.want {
				t.Errorf("DescribeOccupants() = %q, want %q", got, tt.want)
			}
		})
	}
}
