package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"tactics-server/internal/domain"
	"tactics-server/internal/engine"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// maxActionsPerTurn - страховка от зацикливания, если сервер отклоняет команду.
const maxActionsPerTurn = 4

var ErrInboxClosed = errors.New("agent inbox closed")

// Bot - "Игрок-компьютер" (Headless Agent).
// Подключается к движку так же, как WebSocket-клиент: подписывается на снимки
// своей сессии и отвечает командами MOVE / CAST / END_TURN.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе, получение Inbox.
//  2. Run -> создает матч и слушает Inbox, пока бой не закончится.
//  3. На каждый снимок, где ходит юнит бота, вызывается decide.
type Bot struct {
	Session string
	Service *engine.GameService
	Inbox   chan api.ServerResponse

	// Logs - весь боевой лог матча в порядке получения.
	Logs []api.LogEntry

	turn    int // номер хода, в котором бот сейчас действует
	actions int // сколько команд отправлено в этом ходу
}

// Result - итог прогона бота.
type Result struct {
	MatchID string
	Outcome string
	Turn    int
}

func NewBot(session string, service *engine.GameService) *Bot {
	return &Bot{
		Session: session,
		Service: service,
		// Подписка до создания матча, чтобы не пропустить первый снимок
		Inbox: service.Hub.Register(session),
	}
}

func (b *Bot) log() *logrus.Entry {
	return logger.Component("agent").WithField("session", b.Session)
}

// Run играет матч до победы, поражения или до maxTurns передач хода.
// Матч закрывается в любом случае.
func (b *Bot) Run(ctx context.Context, maxTurns int) (Result, error) {
	defer b.Service.Hub.Unregister(b.Session)

	inst, err := b.Service.CreateMatch(ctx, b.Session)
	if err != nil {
		return Result{}, fmt.Errorf("agent: %w", err)
	}
	defer func() {
		if err := b.Service.CloseMatch(b.Session); err != nil {
			b.log().WithError(err).Warn("Close match failed")
		}
	}()

	res := Result{MatchID: inst.ID, Outcome: string(engine.OutcomeOngoing)}

	for {
		select {
		case <-ctx.Done():
			return res, ctx.Err()

		case state, ok := <-b.Inbox:
			if !ok {
				return res, ErrInboxClosed
			}
			b.Logs = append(b.Logs, state.Logs...)
			res.Outcome = state.Outcome
			res.Turn = state.Turn

			if state.Outcome != string(engine.OutcomeOngoing) {
				b.log().WithFields(logrus.Fields{
					"outcome": state.Outcome,
					"turn":    state.Turn,
				}).Info("Match finished")
				return res, nil
			}
			if maxTurns > 0 && state.Turn > maxTurns {
				b.log().WithField("turn", state.Turn).Info("Turn limit reached")
				return res, nil
			}

			if state.ActiveUnitID != "" && state.ActiveUnitID == state.MyUnitID {
				b.act(state)
			}
		}
	}
}

func (b *Bot) act(state api.ServerResponse) {
	if state.Turn != b.turn {
		b.turn = state.Turn
		b.actions = 0
	}
	b.actions++

	cmd := Decide(state)
	if b.actions > maxActionsPerTurn {
		cmd = Command{Action: domain.ActionEndTurn}
	}

	b.log().WithFields(logrus.Fields{
		"turn":   state.Turn,
		"action": cmd.Action.String(),
	}).Debug("Agent decided")

	if err := b.send(cmd); err != nil {
		b.log().WithError(err).Warn("Command not delivered")
	}
}

func (b *Bot) send(cmd Command) error {
	var payload json.RawMessage
	if cmd.Payload != nil {
		raw, err := json.Marshal(cmd.Payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", cmd.Action, err)
		}
		payload = raw
	}

	return b.Service.ProcessCommand(api.ClientCommand{
		Token:   b.Session,
		Action:  cmd.Action.String(),
		Payload: payload,
	})
}

// Command - решение бота в терминах клиентского протокола.
type Command struct {
	Action  domain.ActionType
	Payload interface{} // api.PositionPayload или api.CastPayload
}

// Decide - жадная политика игрока по снимку:
//  1. ближайший враг в списке целей доступной способности - CAST;
//  2. иначе шаг по пути к ближайшему врагу на самую дальнюю достижимую клетку;
//  3. иначе END_TURN.
//
// Работает только с тем, что пришло в снимке, как обычный клиент.
func Decide(state api.ServerResponse) Command {
	me, hostiles := splitUnits(state)
	if me == nil || len(hostiles) == 0 {
		return Command{Action: domain.ActionEndTurn}
	}
	myPos := toPosition(me.Pos)

	sort.SliceStable(hostiles, func(i, j int) bool {
		return myPos.ManhattanTo(toPosition(hostiles[i].Pos)) < myPos.ManhattanTo(toPosition(hostiles[j].Pos))
	})

	// 1. Атака
	for _, h := range hostiles {
		for _, ab := range me.Abilities {
			if ab.Kind != string(domain.AbilityDamage) || !containsCell(ab.Targets, h.Pos) {
				continue
			}
			return Command{
				Action:  domain.ActionCast,
				Payload: api.CastPayload{Ability: ab.Name, X: h.Pos.X, Y: h.Pos.Y},
			}
		}
	}

	// 2. Сближение
	if me.Movement > 0 && len(state.Reachable) > 0 {
		grid := buildLocalGrid(state)
		for _, h := range hostiles {
			path := grid.FindPath(myPos, toPosition(h.Pos))
			// Последняя клетка пути - сам враг
			for i := len(path) - 2; i > 0; i-- {
				if containsCell(state.Reachable, toPositionView(path[i])) {
					return Command{
						Action:  domain.ActionMove,
						Payload: api.PositionPayload{X: path[i].X, Y: path[i].Y},
					}
				}
			}
		}
	}

	return Command{Action: domain.ActionEndTurn}
}

func splitUnits(state api.ServerResponse) (me *api.UnitView, hostiles []api.UnitView) {
	for i := range state.Units {
		u := state.Units[i]
		switch {
		case u.ID == state.MyUnitID:
			me = &state.Units[i]
		case u.Faction == string(domain.FactionHostile):
			hostiles = append(hostiles, u)
		}
	}
	return me, hostiles
}

// buildLocalGrid воссоздает сетку из снимка, чтобы пользоваться тем же поиском пути.
func buildLocalGrid(state api.ServerResponse) *domain.Grid {
	width, height := domain.DefaultGridWidth, domain.DefaultGridHeight
	if state.Grid != nil {
		width, height = state.Grid.Width, state.Grid.Height
	}

	g := domain.NewGrid(width, height)
	for _, o := range state.Obstacles {
		g.AddObstacle(toPosition(o))
	}
	for _, uv := range state.Units {
		u := &domain.Unit{
			ID:      domain.UnitID(uv.ID),
			Faction: domain.Faction(uv.Faction),
			Pos:     toPosition(uv.Pos),
		}
		g.PlaceUnit(u, u.Pos)
	}
	return g
}

func containsCell(cells []api.PositionView, p api.PositionView) bool {
	for _, c := range cells {
		if c == p {
			return true
		}
	}
	return false
}

func toPosition(p api.PositionView) domain.Position {
	return domain.Position{X: p.X, Y: p.Y}
}

func toPositionView(p domain.Position) api.PositionView {
	return api.PositionView{X: p.X, Y: p.Y}
}
