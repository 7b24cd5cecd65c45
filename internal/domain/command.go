package domain

import "encoding/json"

// Command - команда игрока для движка.
// Использует ActionType вместо string.
type Command struct {
	Action  ActionType      // Число! Быстро и безопасно.
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}

// NewCommand собирает команду, упаковывая payload в JSON.
func NewCommand(action ActionType, payload any) Command {
	if payload == nil {
		return Command{Action: action}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Command{Action: action}
	}
	return Command{Action: action, Payload: raw}
}
