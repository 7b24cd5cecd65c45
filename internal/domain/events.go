package domain

import (
	"encoding/json"
	"strings"
)

// EventType - Внутренний числовой идентификатор события триггера
type EventType uint8

const (
	EventUnknown EventType = iota
	EventLevelTransition
)

var eventStringToCmd = map[string]EventType{
	"LEVEL_TRANSITION": EventLevelTransition,
}

var eventCmdToString = map[EventType]string{
	EventLevelTransition: "LEVEL_TRANSITION",
}

// ParseEvent конвертирует строку из JSON в EventType
func ParseEvent(s string) EventType {
	if val, ok := eventStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a EventType) String() string {
	if val, ok := eventCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// LevelTransitionEvent - содержимое триггера лестницы или двери.
type LevelTransitionEvent struct {
	Event       string `json:"event"`
	TargetLevel string `json:"targetLevel"`
	Direction   string `json:"direction"`
}

// TransitionTrigger собирает триггер перехода для лестниц и дверей.
func TransitionTrigger(targetLevel, direction string) *TriggerComponent {
	raw, _ := json.Marshal(LevelTransitionEvent{
		Event:       EventLevelTransition.String(),
		TargetLevel: targetLevel,
		Direction:   direction,
	})
	return &TriggerComponent{OnInteract: raw}
}
