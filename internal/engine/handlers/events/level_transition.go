package events

import (
	"encoding/json"
	"fmt"

	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine/handlers"
	"rotten-soup/pkg/logger"
)

// HandleLevelTransition переводит игрока на другой уровень по триггеру лестницы.
func HandleLevelTransition(ctx handlers.Context, eventData json.RawMessage) (handlers.Result, error) {
	var transitionEvent domain.LevelTransitionEvent
	if err := json.Unmarshal(eventData, &transitionEvent); err != nil {
		logger.Log.Errorf("Error parsing LEVEL_TRANSITION event: %v", err)
		return handlers.EmptyResult(), nil
	}
	if transitionEvent.TargetLevel == "" {
		return handlers.EmptyResult(), fmt.Errorf("level transition without target level")
	}

	source := ctx.Level.Name
	arrival := domain.Arrival{Direction: transitionEvent.Direction, Source: source}
	if err := ctx.Switcher.Transition(ctx.Ctx, transitionEvent.TargetLevel, arrival); err != nil {
		return handlers.EmptyResult(), fmt.Errorf("transition %s -> %s: %w", source, transitionEvent.TargetLevel, err)
	}

	var logMsg string
	if transitionEvent.Direction == "up" {
		logMsg = fmt.Sprintf("%s climbs up to %s.", ctx.Actor.Name, transitionEvent.TargetLevel)
	} else {
		logMsg = fmt.Sprintf("%s descends into %s.", ctx.Actor.Name, transitionEvent.TargetLevel)
	}

	return handlers.Result{
		Msg:      logMsg,
		Category: domain.LogInformation,
	}, nil
}
