package actions

import (
	"rotten-soup/internal/engine/handlers"
)

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	// Ход тратится всегда, сообщение не нужно
	return handlers.TurnResult(), nil
}
