package actions

import (
	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine/handlers"
)

// HandleInteract срабатывает на триггер под игроком (лестница, дверь),
// а если под ногами пусто - на соседней клетке.
func HandleInteract(ctx handlers.Context) (handlers.Result, error) {
	target := findTrigger(ctx.Level, ctx.Actor)
	if target == nil {
		return handlers.Info("There is nothing to interact with here."), nil
	}

	return handlers.Result{
		Event:    target.Trigger.OnInteract,
		EndsTurn: true,
	}, nil
}

func findTrigger(lvl *domain.Level, actor *domain.Entity) *domain.Entity {
	// 1. Своя клетка
	for _, e := range lvl.ActorsAt(actor.Pos.X, actor.Pos.Y) {
		if e.ID != actor.ID && e.Trigger != nil && e.Trigger.OnInteract != nil {
			return e
		}
	}

	// 2. Соседние клетки
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := actor.Pos.Shift(dx, dy)
			for _, e := range lvl.ActorsAt(p.X, p.Y) {
				if e.Trigger != nil && e.Trigger.OnInteract != nil {
					return e
				}
			}
		}
	}
	return nil
}
