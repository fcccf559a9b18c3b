package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"tactics-server/internal/domain"
)

var ErrInvalidMagic = errors.New("invalid magic")

// Load читает запись партии с диска.
func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	return LoadFile(path)
}

// LoadFile читает запись без ReplayService (для -replay в cmd/server).
func LoadFile(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	session, err := readBinary(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read replay %s: %w", path, err)
	}
	return session, nil
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	scenario := make([]byte, header.ScenarioLen)
	if _, err := io.ReadFull(r, scenario); err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	outcome := make([]byte, header.OutcomeLen)
	if _, err := io.ReadFull(r, outcome); err != nil {
		return nil, fmt.Errorf("failed to read outcome: %w", err)
	}

	session := &domain.ReplaySession{
		Scenario:  string(scenario),
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Outcome:   string(outcome),
		// ActionCount не доверяем для аллокации: файл может быть обрезан
		Actions: make([]domain.ReplayAction, 0, min(header.ActionCount, 1024)),
	}

	for i := uint32(0); i < header.ActionCount; i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Turn:   int(ah.Turn),
			Action: domain.ActionType(ah.ActionType),
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		}

		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
