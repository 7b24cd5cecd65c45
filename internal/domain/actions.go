package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия игрока
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionWait
	ActionInteract
	ActionAim     // войти в режим прицеливания
	ActionCast    // войти в режим заклинания
	ActionSelect  // сдвинуть прицел
	ActionNearest // прицел на ближайшего врага
	ActionCycle   // следующий враг
	ActionFire    // подтвердить цель
	ActionCancel  // сбросить прицел
	ActionQuit
	ActionSelectAt // прицел на клетку окна; в конце, номера пишутся в записи
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":      ActionInit,
	"MOVE":      ActionMove,
	"WAIT":      ActionWait,
	"INTERACT":  ActionInteract,
	"AIM":       ActionAim,
	"CAST":      ActionCast,
	"SELECT":    ActionSelect,
	"SELECT_AT": ActionSelectAt,
	"NEAREST":   ActionNearest,
	"CYCLE":     ActionCycle,
	"FIRE":      ActionFire,
	"CANCEL":    ActionCancel,
	"QUIT":      ActionQuit,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionMove:     "MOVE",
	ActionWait:     "WAIT",
	ActionInteract: "INTERACT",
	ActionAim:      "AIM",
	ActionCast:     "CAST",
	ActionSelect:   "SELECT",
	ActionSelectAt: "SELECT_AT",
	ActionNearest:  "NEAREST",
	ActionCycle:    "CYCLE",
	ActionFire:     "FIRE",
	ActionCancel:   "CANCEL",
	ActionQuit:     "QUIT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
