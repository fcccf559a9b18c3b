package engine

import (
	"fmt"
	"tactics-server/internal/domain"
	"tactics-server/internal/systems"
	"tactics-server/pkg/battlefield"
	"tactics-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Outcome - итог боя. Выставляется один раз и сбрасывается только Reset.
type Outcome string

const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
)

// BuildFunc собирает стартовую расстановку. Вызывается при создании матча
// и при каждом Reset, поэтому должна быть детерминированной.
type BuildFunc func() (*battlefield.Battlefield, error)

// Match - состояние одного боя: сетка, ростер живых юнитов, очередь ходов
// и итог. Не потокобезопасен: доступ сериализует Instance.
type Match struct {
	Grid     *domain.Grid
	PlayerID domain.UnitID

	units   map[domain.UnitID]*domain.Unit
	turns   *TurnManager
	outcome Outcome
	turn    int

	build BuildFunc
}

func NewMatch(build BuildFunc) (*Match, error) {
	m := &Match{build: build}
	if err := m.Reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset полностью пересобирает бой из сценария.
// Первый в очереди юнит ходит с полными пулами, Advance для него не вызывается.
func (m *Match) Reset() error {
	bf, err := m.build()
	if err != nil {
		return fmt.Errorf("build battlefield: %w", err)
	}

	order := make([]domain.UnitID, 0, len(bf.Units))
	units := make(map[domain.UnitID]*domain.Unit, len(bf.Units))
	for _, u := range bf.Units {
		units[u.ID] = u
		order = append(order, u.ID)
	}

	m.Grid = bf.Grid
	m.PlayerID = bf.PlayerID
	m.units = units
	m.turns = NewTurnManager(order)
	m.outcome = OutcomeOngoing
	m.turn = 1
	m.CheckTerminal()

	m.log().WithField("units", len(order)).Info("Match reset")
	return nil
}

func (m *Match) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "match",
		"turn":      m.turn,
	})
}

// --- Запросы ---

// Current - юнит, чей сейчас ход. nil, если очередь пуста.
func (m *Match) Current() *domain.Unit {
	id, ok := m.turns.Current()
	if !ok {
		return nil
	}
	u, ok := m.units[id]
	if !ok {
		m.log().WithField("unit", id).Panic("Invariant broken: turn order references a unit outside the roster.")
	}
	return u
}

// Unit ищет живого юнита по ID.
func (m *Match) Unit(id domain.UnitID) *domain.Unit {
	return m.units[id]
}

// Player - юнит игрока или nil, если он погиб.
func (m *Match) Player() *domain.Unit {
	return m.units[m.PlayerID]
}

// Roster возвращает живых юнитов в порядке ходов.
func (m *Match) Roster() []*domain.Unit {
	order := m.turns.Order()
	roster := make([]*domain.Unit, 0, len(order))
	for _, id := range order {
		roster = append(roster, m.units[id])
	}
	return roster
}

func (m *Match) Outcome() Outcome {
	return m.outcome
}

// Turn - сколько раз передавался ход, начиная с 1.
func (m *Match) Turn() int {
	return m.turn
}

// IsOver - бой закончен победой или поражением.
func (m *Match) IsOver() bool {
	return m.outcome != OutcomeOngoing
}

// Reachable - клетки, куда текущий юнит может пойти с оставшимися очками движения.
func (m *Match) Reachable() []domain.Position {
	cur := m.Current()
	if cur == nil || m.IsOver() {
		return nil
	}
	return m.Grid.ReachableCells(cur.Pos, cur.Movement)
}

// Turns отдает очередь ходов для отладки.
func (m *Match) Turns() *TurnManager {
	return m.turns
}

// --- Команды ---

// actor проверяет, что бой идет и что ходит именно id.
func (m *Match) actor(id domain.UnitID) (*domain.Unit, systems.Rejection) {
	if m.IsOver() {
		return nil, systems.RejectMatchOver
	}
	cur := m.Current()
	if cur == nil || cur.ID != id {
		return nil, systems.RejectNotYourTurn
	}
	return cur, systems.RejectNone
}

// Move перемещает текущего юнита.
func (m *Match) Move(actor domain.UnitID, dest domain.Position) systems.MoveResult {
	u, reason := m.actor(actor)
	if reason != systems.RejectNone {
		return systems.MoveResult{Reason: reason, To: dest}
	}

	res := systems.MoveUnit(m.Grid, u, dest)
	if res.OK {
		m.CheckTerminal()
	}
	return res
}

// Cast применяет способность текущего юнита по клетке target.
// Погибшая цель убирается из сетки, ростера и очереди до любых
// дальнейших обращений к очереди.
func (m *Match) Cast(actor domain.UnitID, ability string, target domain.Position) systems.CastResult {
	u, reason := m.actor(actor)
	if reason != systems.RejectNone {
		return systems.CastResult{Reason: reason, Ability: ability}
	}

	ab, ok := u.Ability(ability)
	if !ok {
		return systems.CastResult{Reason: systems.RejectUnknownAbility, Ability: ability}
	}

	res := systems.CastAbility(m.Grid, u, ab, target)
	if !res.OK {
		return res
	}
	if res.Died {
		m.removeUnit(res.Target.ID)
	}
	m.CheckTerminal()
	return res
}

// EndTurn завершает ход actor.
func (m *Match) EndTurn(actor domain.UnitID) (domain.TurnReport, systems.Rejection) {
	if _, reason := m.actor(actor); reason != systems.RejectNone {
		return domain.TurnReport{}, reason
	}
	return m.Advance(), systems.RejectNone
}

// Advance передает ход следующему юниту и выполняет начало его хода.
// Если юнит погиб от эффектов в начале хода, он убирается и ход идет дальше.
func (m *Match) Advance() domain.TurnReport {
	var report domain.TurnReport

	for !m.IsOver() {
		id, ok := m.turns.Advance()
		if !ok {
			m.log().Panic("Invariant broken: turn order is empty while the match is ongoing.")
		}
		m.turn++

		u := m.Current()
		start := u.BeginTurn()

		for _, name := range start.Expired {
			report.Messages = append(report.Messages, fmt.Sprintf("%s: эффект %s закончился.", u.ID, name))
		}
		if start.DotDamage > 0 {
			report.Messages = append(report.Messages, fmt.Sprintf("%s получает %d урона от эффектов.", u.ID, start.DotDamage))
		}

		if start.Died {
			report.Messages = append(report.Messages, fmt.Sprintf("%s погибает.", u.ID))
			report.Casualties = append(report.Casualties, id)
			m.removeUnit(id)
			m.CheckTerminal()
			continue
		}

		report.Current = u.ID
		report.Movement = start.Movement
		report.Action = start.Action

		m.log().WithFields(logrus.Fields{
			"unit":     u.ID,
			"movement": start.Movement,
			"action":   start.Action,
		}).Debug("Turn started")
		break
	}

	return report
}

// CheckTerminal пересчитывает итог боя. Поражение проверяется первым.
func (m *Match) CheckTerminal() Outcome {
	if m.IsOver() {
		return m.outcome
	}

	if p := m.Player(); p == nil || !p.IsAlive() {
		m.outcome = OutcomeDefeat
	} else if m.hostileCount() == 0 {
		m.outcome = OutcomeVictory
	}

	if m.IsOver() {
		m.log().WithField("outcome", m.outcome).Info("Match finished")
	}
	return m.outcome
}

func (m *Match) hostileCount() int {
	n := 0
	for _, u := range m.units {
		if u.IsHostile() {
			n++
		}
	}
	return n
}

func (m *Match) removeUnit(id domain.UnitID) {
	u, ok := m.units[id]
	if !ok {
		return
	}
	if m.Grid.GetOccupantAt(u.Pos) != u {
		m.log().WithFields(logrus.Fields{
			"unit": id,
			"pos":  u.Pos.String(),
		}).Panic("Invariant broken: unit position disagrees with grid occupancy.")
	}

	m.Grid.RemoveUnit(u.Pos)
	delete(m.units, id)
	m.turns.Remove(id)

	m.log().WithField("unit", id).Info("Unit removed from match")
}
