package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// Границы поля здесь не проверяются: это делает ядро и отвечает отказом.

func (p CastPayload) Validate() error {
	if strings.TrimSpace(p.Ability) == "" {
		return errors.New("ability is required")
	}
	return nil
}

func (c ClientCommand) Validate() error {
	if strings.TrimSpace(c.Action) == "" {
		return errors.New("action is required")
	}
	return nil
}
