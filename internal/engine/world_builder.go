package engine

import (
	"rotten-soup/internal/core/types"
	"rotten-soup/internal/core/types/enums"
	"rotten-soup/internal/domain"
)

const (
	playerName  = "Player"
	playerColor = 0xFFFFFF
)

// newPlayer создает игрока на позиции прибытия стартового уровня.
func newPlayer(ids *types.IDAllocator, pos domain.Position, radius int) (*domain.Entity, error) {
	player, err := domain.NewEntity(ids.Next(0, uint8(enums.EntityKindPlayer)), enums.EntityKindPlayer, playerName, pos)
	if err != nil {
		return nil, err
	}

	player.Render = &domain.RenderComponent{Glyph: types.MakeGlyph(playerColor, '@')}
	player.Vision = &domain.VisionComponent{Radius: radius}
	player.Inventory = &domain.InventoryComponent{}
	player.Player = &domain.PlayerComponent{Mode: domain.ModeExplore}

	return player, nil
}
