package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"rotten-soup/internal/domain"
)

// processEvent - является точкой входа для обработки событий, возвращенных хендлерами.
func (s *Session) processEvent(ctx context.Context, actor *domain.Entity, eventData json.RawMessage) error {
	var genericEvent struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(eventData, &genericEvent); err != nil {
		return fmt.Errorf("parse event: %w", err)
	}

	eventType := domain.ParseEvent(genericEvent.Event)
	handler, ok := s.events[eventType]
	if !ok {
		// Здесь в будущем могут быть другие события: "SPAWN_MONSTER", "OPEN_DOOR", etc.
		s.logger.WithField("event", genericEvent.Event).Warn("Unknown event type")
		return nil
	}

	result, err := handler(s.handlerContext(ctx, actor), eventData)
	if err != nil {
		return fmt.Errorf("event %s: %w", eventType, err)
	}
	if result.Msg != "" {
		s.log.Log(result.Msg, result.Category)
	}
	return nil
}
