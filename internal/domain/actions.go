package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionCast
	ActionEndTurn
	ActionReset
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"MOVE":     ActionMove,
	"CAST":     ActionCast,
	"END_TURN": ActionEndTurn,
	"RESET":    ActionReset,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:    "INIT",
	ActionMove:    "MOVE",
	ActionCast:    "CAST",
	ActionEndTurn: "END_TURN",
	ActionReset:   "RESET",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
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

// IsCommitting - действие меняет состояние боя (попадает в реплей).
func (a ActionType) IsCommitting() bool {
	switch a {
	case ActionMove, ActionCast, ActionEndTurn, ActionReset:
		return true
	}
	return false
}
