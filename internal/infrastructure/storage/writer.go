package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"tactics-server/internal/domain"
)

const (
	MagicHeader string = `TCRP` // 4 байта
	Version1    uint32 = 1

	FileExt = ".tcrp"
)

// ReplayFileHeader - фиксированная часть заголовка файла.
// За ней идут ScenarioLen байт имени сценария и OutcomeLen байт итога.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	ScenarioLen uint16  // 2 байта
	OutcomeLen  uint8   // 1 байт
	ActionCount uint32  // 4 байта
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Turn       int32  // 4
	ActionType uint8  // 1
	PayloadLen uint16 // 2
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir %s: %w", dir, err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет запись партии в SaveDir и возвращает путь к файлу.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%d_%d%s", session.Scenario, session.Seed, session.Timestamp, FileExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, session); err != nil {
		return "", fmt.Errorf("write replay %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush replay %s: %w", path, err)
	}
	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	if len(s.Scenario) > 65535 {
		return fmt.Errorf("scenario name too long: %d", len(s.Scenario))
	}
	if len(s.Outcome) > 255 {
		return fmt.Errorf("outcome too long: %d", len(s.Outcome))
	}

	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		ScenarioLen: uint16(len(s.Scenario)),
		OutcomeLen:  uint8(len(s.Outcome)),
		ActionCount: uint32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := io.WriteString(w, s.Scenario); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s.Outcome); err != nil {
		return err
	}

	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Turn:       int32(act.Turn),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
