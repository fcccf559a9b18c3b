package engine

import (
	"context"
	"fmt"
	"sync"
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/internal/network"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
	"time"

	"github.com/sirupsen/logrus"
)

// Instance - один запущенный бой одной сессии.
// Все обращения к Match идут из горутины Run (или синхронно через Execute,
// когда горутина не запущена, например при проигрывании реплея).
type Instance struct {
	ID       string // uuid матча
	Session  string // токен сессии игрока
	Scenario string
	Seed     int64

	Match *Match

	CommandChan chan domain.InternalCommand

	Logs   []api.LogEntry        // Записи с прошлого снимка
	Replay *domain.ReplaySession // Лента команд игрока

	hub      *network.Broadcaster // nil для headless-инстансов
	handlers map[domain.ActionType]handlers.HandlerFunc

	logSeq    int
	announced bool // итог боя уже записан в лог

	mu        sync.RWMutex
	snapshot  api.ServerResponse       // последний разосланный снимок
	turnsDump []map[string]interface{} // очередь ходов на момент снимка

	cancel context.CancelFunc
	done   chan struct{}
}

func NewInstance(id, session, scenario string, seed int64, match *Match, hub *network.Broadcaster, hs map[domain.ActionType]handlers.HandlerFunc) *Instance {
	return &Instance{
		ID:          id,
		Session:     session,
		Scenario:    scenario,
		Seed:        seed,
		Match:       match,
		CommandChan: make(chan domain.InternalCommand, 100),
		Logs:        []api.LogEntry{},
		Replay: &domain.ReplaySession{
			Scenario:  scenario,
			Seed:      seed,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
		hub:      hub,
		handlers: hs,
		done:     make(chan struct{}),
	}
}

func (i *Instance) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "instance",
		"match_id":  i.ID,
	})
}

// Start запускает цикл инстанса в отдельной горутине.
func (i *Instance) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	i.cancel = cancel
	go i.Run(ctx)
}

// Stop останавливает цикл и ждет его завершения.
func (i *Instance) Stop() {
	if i.cancel == nil {
		return
	}
	i.cancel()
	<-i.done
}

// Done закрывается, когда Run завершился.
func (i *Instance) Done() <-chan struct{} {
	return i.done
}

// Run - игровой цикл ЭТОГО инстанса: команда игрока, затем ходы врагов
// до следующего хода игрока, затем рассылка снимка.
func (i *Instance) Run(ctx context.Context) {
	defer close(i.done)
	i.log().WithFields(logrus.Fields{
		"scenario": i.Scenario,
		"seed":     i.Seed,
	}).Info("Instance loop started")

	i.Settle()
	i.Publish()

	for {
		select {
		case <-ctx.Done():
			i.log().Info("Instance loop stopped")
			return

		case cmd, ok := <-i.CommandChan:
			if !ok {
				return
			}
			i.Execute(cmd)
			i.Publish()
		}
	}
}

// Execute выполняет одну команду игрока и доигрывает ходы врагов.
func (i *Instance) Execute(cmd domain.InternalCommand) {
	if cmd.Action.IsCommitting() {
		i.recordAction(cmd)
	}

	handler, ok := i.handlers[cmd.Action]
	if !ok {
		i.log().WithField("action", cmd.Action.String()).Warn("No handler for action")
		return
	}

	ctx := handlers.Context{
		Arena: i.Match,
		Actor: i.Match.PlayerID,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		i.log().WithError(err).WithField("action", cmd.Action.String()).Warn("Command failed")
		i.AddLog(fmt.Sprintf("Некорректная команда %s.", cmd.Action), "ERROR")
		return
	}

	if cmd.Action == domain.ActionReset {
		i.announced = false
	}
	if result.Msg != "" {
		i.AddLog(result.Msg, result.MsgType)
	}
	for _, msg := range result.Extra {
		i.AddLog(msg, "INFO")
	}

	i.Settle()
}

// Settle проигрывает ходы всех не-игровых юнитов, пока ход не вернется
// к игроку или бой не закончится.
func (i *Instance) Settle() {
	m := i.Match
	for !m.IsOver() {
		cur := m.Current()
		if cur.ID == m.PlayerID {
			break
		}

		var report domain.TurnReport
		if cur.IsHostile() {
			report = m.RunHostileTurn()
		} else {
			report = m.Advance()
		}
		for _, msg := range report.Messages {
			i.AddLog(msg, "COMBAT")
		}
	}

	if m.IsOver() && !i.announced {
		i.announced = true
		switch m.Outcome() {
		case OutcomeVictory:
			i.AddLog("Победа! Все враги повержены.", "INFO")
		case OutcomeDefeat:
			i.AddLog("Поражение. Герой пал.", "INFO")
		}
	}
}

// Publish строит снимок, запоминает его для отладки и отправляет сессии.
func (i *Instance) Publish() {
	state := i.BuildState()

	i.mu.Lock()
	i.snapshot = state
	i.turnsDump = i.Match.Turns().DebugDump()
	i.mu.Unlock()

	if i.hub != nil {
		i.hub.SendTo(i.Session, state)
	}

	// Логи рассылаются один раз
	i.Logs = []api.LogEntry{}
}

// Snapshot возвращает последний разосланный снимок. Безопасен из любой горутины.
func (i *Instance) Snapshot() api.ServerResponse {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.snapshot
}

// TurnsDump возвращает очередь ходов из последнего снимка (для /debug).
func (i *Instance) TurnsDump() []map[string]interface{} {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.turnsDump
}

func (i *Instance) recordAction(cmd domain.InternalCommand) {
	i.Replay.Actions = append(i.Replay.Actions, domain.ReplayAction{
		Turn:    i.Match.Turn(),
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}
