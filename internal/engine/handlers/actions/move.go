package actions

import (
	"fmt"
	"strings"

	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine/handlers"
	"rotten-soup/internal/systems"
	"rotten-soup/pkg/api"
)

// HandleMove двигает актора. В режиме прицеливания стрелки двигают прицел.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	actor := ctx.Actor

	if actor.IsPlayer() && actor.Player.Aiming() {
		ctx.Targeting.SelectRelative(p.Dx, p.Dy)
		return handlers.EmptyResult(), nil
	}

	res, err := systems.ApplyMove(actor, p.Dx, p.Dy, ctx.Level)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	if res.HasMoved {
		return handlers.TurnResult(), nil
	}

	// Дальше только неудачные шаги. Монстр просто теряет ход.
	if !actor.IsPlayer() {
		return handlers.TurnResult(), nil
	}

	if res.BlockedBy != nil {
		return handlers.Result{
			Msg:      fmt.Sprintf("A %s blocks your way.", strings.ToLower(res.BlockedBy.DisplayName())),
			Category: domain.LogDefend,
		}, nil
	}

	return handlers.Info("The way is blocked."), nil
}
