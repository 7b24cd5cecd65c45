package actions

import "rotten-soup/internal/engine/handlers"

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Info("Welcome to Rotten Soup."), nil
}
