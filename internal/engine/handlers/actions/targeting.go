package actions

import (
	"fmt"

	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine/handlers"
	"rotten-soup/internal/systems"
	"rotten-soup/pkg/api"
)

// HandleAim включает режим прицеливания и наводится на ближайшего врага.
func HandleAim(ctx handlers.Context) (handlers.Result, error) {
	return enterAiming(ctx, domain.ModeTargeting), nil
}

// HandleCast включает режим заклинания. Выбор цели работает так же.
func HandleCast(ctx handlers.Context) (handlers.Result, error) {
	return enterAiming(ctx, domain.ModeCasting), nil
}

func enterAiming(ctx handlers.Context, mode domain.PlayerMode) handlers.Result {
	ctx.Actor.Player.Mode = mode
	if !ctx.Targeting.SelectNearestEnemy() {
		// Врагов нет - рамка встаёт на клетку игрока
		ctx.Targeting.SelectRelative(0, 0)
	}
	return handlers.EmptyResult()
}

// HandleSelect сдвигает прицел на одну клетку.
func HandleSelect(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	ctx.Targeting.SelectRelative(p.Dx, p.Dy)
	return handlers.EmptyResult(), nil
}

// HandleSelectAt ставит прицел на клетку окна камеры.
// Координаты за краем окна прижимаются к ближайшей клетке.
func HandleSelectAt(ctx handlers.Context, p api.CellPayload) (handlers.Result, error) {
	vp := ctx.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		return handlers.EmptyResult(), nil
	}

	pos := domain.Position{
		X: vp.X + min(p.Col, vp.Width-1),
		Y: vp.Y + min(p.Row, vp.Height-1),
	}
	ctx.Targeting.SelectExact(pos, true)
	return handlers.EmptyResult(), nil
}

// HandleNearest наводит прицел на ближайшего врага.
func HandleNearest(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Targeting.SelectNearestEnemy() {
		return handlers.Info("No enemies in sight."), nil
	}
	return handlers.EmptyResult(), nil
}

// HandleCycle переключает прицел на следующего врага.
func HandleCycle(ctx handlers.Context) (handlers.Result, error) {
	ctx.Targeting.CycleNearestEnemies()
	return handlers.EmptyResult(), nil
}

// HandleFire подтверждает цель. Недоступная клетка хода не тратит.
func HandleFire(ctx handlers.Context) (handlers.Result, error) {
	pos, ok := ctx.Targeting.Target()
	if !ok {
		return handlers.Info("That tile is out of range or blocked."), nil
	}

	category := domain.LogAttack
	verb := "shoot at"
	if ctx.Actor.Player.Mode == domain.ModeCasting {
		category = domain.LogMagic
		verb = "cast at"
	}
	what := systems.DescribeOccupants(ctx.Level.ActorsAt(pos.X, pos.Y))

	ctx.Targeting.Clear()
	ctx.Actor.Player.Mode = domain.ModeExplore

	return handlers.Result{
		Msg:      fmt.Sprintf("You %s %s.", verb, what),
		Category: category,
		EndsTurn: true,
	}, nil
}

// HandleCancel снимает прицел и возвращает обычный режим.
func HandleCancel(ctx handlers.Context) (handlers.Result, error) {
	ctx.Targeting.Clear()
	ctx.Actor.Player.Mode = domain.ModeExplore
	return handlers.EmptyResult(), nil
}

// HandleQuit завершает сессию.
func HandleQuit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), handlers.ErrQuit
}
