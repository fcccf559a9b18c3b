package domain

import "encoding/json"

// ReplayAction - одна принятая команда игрока.
type ReplayAction struct {
	Turn    int             `json:"turn"`    // Номер хода матча в момент команды
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - запись партии: сценарий, зерно и команды игрока.
// Состояние боя не сохраняется, матч воспроизводится заново по командам.
type ReplaySession struct {
	Scenario  string         `json:"scenario"`
	Seed      int64          `json:"seed"`
	Timestamp int64          `json:"timestamp"`
	Outcome   string         `json:"outcome,omitempty"`
	Actions   []ReplayAction `json:"actions"`
}
