package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"tactics-server/internal/content"
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/internal/engine/handlers/actions"
	"tactics-server/internal/infrastructure/storage"
	"tactics-server/internal/network"
	"tactics-server/pkg/api"
	"tactics-server/pkg/battlefield"
	"tactics-server/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNoMatch       = errors.New("no match for session")
	ErrMatchExists   = errors.New("session already has a match")
)

// GameService управляет матчами: одна сессия - один матч в своем инстансе.
type GameService struct {
	cfg     Config
	Catalog *content.Catalog
	Hub     *network.Broadcaster
	Replays *storage.ReplayService // nil, если запись выключена

	mu        sync.RWMutex
	instances map[string]*Instance // session -> instance
	created   int64

	handlers map[domain.ActionType]handlers.HandlerFunc
}

func NewService(cfg Config, catalog *content.Catalog) (*GameService, error) {
	if _, err := catalog.Scenario(cfg.Scenario); err != nil {
		return nil, err
	}

	s := &GameService{
		cfg:       cfg,
		Catalog:   catalog,
		Hub:       network.NewBroadcaster(),
		instances: make(map[string]*Instance),
		handlers:  make(map[domain.ActionType]handlers.HandlerFunc),
	}

	if cfg.RecordReplays {
		replays, err := storage.NewReplayService(cfg.ReplayDir)
		if err != nil {
			return nil, err
		}
		s.Replays = replays
	}

	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionCast] = handlers.WithPayload(actions.HandleCast)
	s.handlers[domain.ActionEndTurn] = handlers.WithEmptyPayload(actions.HandleEndTurn)
	s.handlers[domain.ActionReset] = handlers.WithEmptyPayload(actions.HandleReset)
}

// newInstance собирает матч по сценарию, не запуская его цикл.
func (s *GameService) newInstance(session, scenario string, seed int64, hub *network.Broadcaster) (*Instance, error) {
	match, err := NewMatch(func() (*battlefield.Battlefield, error) {
		return s.Catalog.Build(scenario, seed)
	})
	if err != nil {
		return nil, err
	}
	return NewInstance(uuid.NewString(), session, scenario, seed, match, hub, s.handlers), nil
}

// CreateMatch создает и запускает матч для сессии.
// Зерно матча = Config.Seed + порядковый номер матча.
func (s *GameService) CreateMatch(ctx context.Context, session string) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[session]; ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchExists, session)
	}

	seed := s.cfg.Seed + s.created
	inst, err := s.newInstance(session, s.cfg.Scenario, seed, s.Hub)
	if err != nil {
		return nil, err
	}
	s.created++
	s.instances[session] = inst

	logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"session":   session,
		"match_id":  inst.ID,
		"seed":      seed,
	}).Info("Match created")

	inst.Start(ctx)
	return inst, nil
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот)
// и передает ее в инстанс сессии.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("%w: %q", ErrUnknownAction, externalCmd.Action)
	}

	s.mu.RLock()
	inst, ok := s.instances[externalCmd.Token]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMatch, externalCmd.Token)
	}

	cmd := domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}

	select {
	case inst.CommandChan <- cmd:
		return nil
	case <-inst.Done():
		return fmt.Errorf("%w: %s", ErrNoMatch, externalCmd.Token)
	}
}

// CloseMatch останавливает матч сессии и сохраняет запись, если она включена.
func (s *GameService) CloseMatch(session string) error {
	s.mu.Lock()
	inst, ok := s.instances[session]
	delete(s.instances, session)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNoMatch, session)
	}

	inst.Stop()

	closeLog := logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"session":   session,
		"match_id":  inst.ID,
		"outcome":   inst.Match.Outcome(),
	})

	if s.Replays == nil || len(inst.Replay.Actions) == 0 {
		closeLog.Info("Match closed")
		return nil
	}

	inst.Replay.Outcome = string(inst.Match.Outcome())
	path, err := s.Replays.Save(inst.Replay)
	if err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	closeLog.WithField("replay", path).Info("Match closed, replay saved")
	return nil
}

// Shutdown закрывает все матчи.
func (s *GameService) Shutdown() {
	s.mu.RLock()
	sessions := make([]string, 0, len(s.instances))
	for session := range s.instances {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	for _, session := range sessions {
		if err := s.CloseMatch(session); err != nil {
			logger.Log.WithError(err).WithField("session", session).Warn("Close match failed")
		}
	}
}

// Instances возвращает запущенные матчи, отсортированные по ID (для /debug).
func (s *GameService) Instances() []*Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		list = append(list, inst)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].ID < list[b].ID })
	return list
}

// FindMatch ищет запущенный матч по его ID.
func (s *GameService) FindMatch(id string) (*Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inst := range s.instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return nil, false
}

// Playback заново проигрывает записанные команды с тем же сценарием и зерном.
// Возвращает итог и инстанс (для печати лога).
func (s *GameService) Playback(rs *domain.ReplaySession) (Outcome, *Instance, error) {
	inst, err := s.newInstance("replay", rs.Scenario, rs.Seed, nil)
	if err != nil {
		return "", nil, fmt.Errorf("playback: %w", err)
	}

	inst.Settle()
	for _, act := range rs.Actions {
		inst.Execute(domain.InternalCommand{
			Action:  act.Action,
			Token:   inst.Session,
			Payload: act.Payload,
		})
	}

	outcome := inst.Match.Outcome()
	logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"scenario":  rs.Scenario,
		"seed":      rs.Seed,
		"actions":   len(rs.Actions),
		"outcome":   outcome,
		"recorded":  rs.Outcome,
	}).Info("Replay finished")

	if rs.Outcome != "" && string(outcome) != rs.Outcome {
		return outcome, inst, fmt.Errorf("replay diverged: got %s, recorded %s", outcome, rs.Outcome)
	}
	return outcome, inst, nil
}
