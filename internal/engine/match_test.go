package engine

import (
	"strings"
	"tactics-server/internal/content"
	"tactics-server/internal/domain"
	"tactics-server/internal/systems"
	"tactics-server/pkg/battlefield"
	"testing"
)

// Очередь [A,B,C], ходит B и убивает C: очередь становится [A,B],
// следующий Advance переходит на A, а не за границу.
func TestMatch_LethalCastAdjustsTurnOrder(t *testing.T) {
	m := newTestMatch(t, hero("A", 0, 0), monster("B", 5, 5), monster("C", 5, 6))
	m.Unit("C").HP = 5

	if _, reason := m.EndTurn("A"); reason != systems.RejectNone {
		t.Fatalf("EndTurn(A) rejected: %s", reason)
	}
	if m.Current().ID != "B" || m.Turns().Index() != 1 {
		t.Fatalf("current = %s at %d, want B at 1", m.Current().ID, m.Turns().Index())
	}

	res := m.Cast("B", "Bite", domain.Position{X: 5, Y: 6})
	if !res.OK || !res.Died {
		t.Fatalf("cast = %+v", res)
	}

	if got := rosterIDs(m); !sameIDs(got, []domain.UnitID{"A", "B"}) {
		t.Errorf("roster = %v", got)
	}
	if !sameIDs(m.Turns().Order(), []domain.UnitID{"A", "B"}) {
		t.Errorf("turn order = %v", m.Turns().Order())
	}
	if m.Grid.GetOccupantAt(domain.Position{X: 5, Y: 6}) != nil || m.Unit("C") != nil {
		t.Error("dead unit is still on the grid or in the roster")
	}

	report, _ := m.EndTurn("B")
	if report.Current != "A" || m.Turns().Index() != 0 {
		t.Errorf("after advance current = %s at %d, want A at 0", report.Current, m.Turns().Index())
	}
	if m.Outcome() != OutcomeOngoing {
		t.Errorf("outcome = %s", m.Outcome())
	}
}

func TestMatch_Rejections(t *testing.T) {
	m := newTestMatch(t, hero("Hero", 0, 0), monster("M", 5, 5))

	if res := m.Move("M", domain.Position{X: 5, Y: 4}); res.Reason != systems.RejectNotYourTurn {
		t.Errorf("move out of turn: %s", res.Reason)
	}
	if m.Unit("M").Pos != (domain.Position{X: 5, Y: 5}) {
		t.Error("rejected move changed state")
	}

	if res := m.Cast("Hero", "Meteor", domain.Position{X: 5, Y: 5}); res.Reason != systems.RejectUnknownAbility {
		t.Errorf("unknown ability: %s", res.Reason)
	}
	if _, reason := m.EndTurn("M"); reason != systems.RejectNotYourTurn {
		t.Errorf("end turn out of turn: %s", reason)
	}
	if m.Current().ID != "Hero" {
		t.Errorf("current = %s", m.Current().ID)
	}
}

func TestMatch_Victory(t *testing.T) {
	m := newTestMatch(t, hero("Hero", 0, 0), monster("M", 0, 1))
	m.Unit("M").HP = 5

	res := m.Cast("Hero", "Bolt", domain.Position{X: 0, Y: 1})
	if !res.OK || !res.Died {
		t.Fatalf("cast = %+v", res)
	}
	if m.Outcome() != OutcomeVictory {
		t.Fatalf("outcome = %s, want victory", m.Outcome())
	}

	// Итог не меняется, команды отклоняются
	if res := m.Move("Hero", domain.Position{X: 1, Y: 0}); res.Reason != systems.RejectMatchOver {
		t.Errorf("move after victory: %s", res.Reason)
	}
	if _, reason := m.EndTurn("Hero"); reason != systems.RejectMatchOver {
		t.Errorf("end turn after victory: %s", reason)
	}
	if m.Reachable() != nil {
		t.Error("no highlight after the match is over")
	}
}

func TestMatch_DefeatByHostileTurn(t *testing.T) {
	m := newTestMatch(t, hero("Hero", 0, 0), monster("M", 0, 1))
	m.Unit("Hero").HP = 5

	m.EndTurn("Hero")
	report := m.RunHostileTurn()

	if m.Outcome() != OutcomeDefeat {
		t.Fatalf("outcome = %s, want defeat", m.Outcome())
	}
	if m.Player() != nil {
		t.Error("dead player must leave the roster")
	}
	if len(report.Messages) == 0 || !strings.Contains(report.Messages[0], "Bite") {
		t.Errorf("messages = %v", report.Messages)
	}
}

func TestMatch_HostileTurnChasesAndPassesTurn(t *testing.T) {
	m := newTestMatch(t, hero("Hero", 0, 0), monster("M", 9, 9))

	if res := m.Move("Hero", domain.Position{X: 2, Y: 0}); !res.OK || res.Cost != 2 {
		t.Fatalf("move = %+v", res)
	}
	m.EndTurn("Hero")

	report := m.RunHostileTurn()

	if d := m.Unit("M").Pos.ManhattanTo(domain.Position{X: 9, Y: 9}); d != 1 {
		t.Errorf("hostile moved %d cells, want one step", d)
	}
	if report.Current != "Hero" {
		t.Fatalf("current = %s, want Hero", report.Current)
	}
	p := m.Player()
	if report.Movement != 3 || report.Action != 5 || p.Movement != 3 || p.Action != 5 {
		t.Errorf("pools not reset: report %+v, hero %d/%d", report, p.Movement, p.Action)
	}
	if m.Turn() != 3 {
		t.Errorf("turn = %d, want 3", m.Turn())
	}
}

func TestMatch_DotDeathSkipsTurn(t *testing.T) {
	m := newTestMatch(t, hero("Hero", 0, 0), monster("M1", 0, 2), monster("M2", 9, 9))
	m.Unit("M1").HP = 10

	if res := m.Cast("Hero", "Poison", domain.Position{X: 0, Y: 2}); !res.OK || res.Effect != "Poison" {
		t.Fatalf("cast = %+v", res)
	}

	report, _ := m.EndTurn("Hero")

	if report.Current != "M2" {
		t.Errorf("current = %s, want M2", report.Current)
	}
	if len(report.Casualties) != 1 || report.Casualties[0] != "M1" {
		t.Errorf("casualties = %v", report.Casualties)
	}
	if got := rosterIDs(m); !sameIDs(got, []domain.UnitID{"Hero", "M2"}) {
		t.Errorf("roster = %v", got)
	}
}

func TestMatch_DotKillsLastHostile(t *testing.T) {
	m := newTestMatch(t, hero("Hero", 0, 0), monster("M", 0, 2))
	m.Unit("M").HP = 10

	m.Cast("Hero", "Poison", domain.Position{X: 0, Y: 2})
	report, _ := m.EndTurn("Hero")

	if m.Outcome() != OutcomeVictory {
		t.Errorf("outcome = %s, want victory", m.Outcome())
	}
	if report.Current != "" {
		t.Errorf("no unit should start a turn after the match ended, got %s", report.Current)
	}
}

func TestMatch_Reset(t *testing.T) {
	m := newTestMatch(t, hero("Hero", 0, 0), monster("M", 0, 1))
	m.Unit("M").HP = 5
	m.Cast("Hero", "Bolt", domain.Position{X: 0, Y: 1})

	if err := m.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if m.Outcome() != OutcomeOngoing || m.Turn() != 1 {
		t.Errorf("outcome = %s, turn = %d", m.Outcome(), m.Turn())
	}
	if got := rosterIDs(m); !sameIDs(got, []domain.UnitID{"Hero", "M"}) {
		t.Errorf("roster = %v", got)
	}
	if u := m.Unit("M"); u.HP != u.MaxHP {
		t.Errorf("hp = %d after reset", u.HP)
	}
	if m.Player().Action != 5 {
		t.Errorf("action = %d after reset", m.Player().Action)
	}
}

func TestMatch_Reachable(t *testing.T) {
	m := newTestMatch(t, hero("Hero", 1, 1), monster("M", 9, 9))

	cells := make(map[domain.Position]bool)
	for _, p := range m.Reachable() {
		cells[p] = true
	}

	if cells[domain.Position{X: 1, Y: 1}] {
		t.Error("origin must not be reachable")
	}
	if !cells[domain.Position{X: 1, Y: 4}] || !cells[domain.Position{X: 4, Y: 1}] {
		t.Error("cells at distance 3 must be reachable")
	}
	if cells[domain.Position{X: 5, Y: 1}] {
		t.Error("(5,1) is at distance 4")
	}
}

func TestMatch_ArcherKeepsActing(t *testing.T) {
	catalog, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	warrior, _ := catalog.Archetype("Warrior")
	archer, _ := catalog.Archetype("Archer")

	// Лучник, которому нужна линия видимости: за стеной должен обходить
	sighted := archer
	sighted.Abilities = append([]domain.Ability(nil), archer.Abilities...)
	sighted.Abilities[0].RequiresLOS = true

	tests := []struct {
		name      string
		archer    domain.Archetype
		pos       domain.Position
		obstacles []domain.Position
	}{
		{"adjacent", archer, domain.Position{X: 2, Y: 1}, nil},
		{"behind wall", archer, domain.Position{X: 4, Y: 1}, []domain.Position{{X: 3, Y: 1}}},
		{"behind wall, needs sight", sighted, domain.Position{X: 4, Y: 1}, []domain.Position{{X: 3, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatch(func() (*battlefield.Battlefield, error) {
				return battlefield.New(10, 10, nil).
					WithObstacles(tt.obstacles...).
					Player("Warrior").
					Spawn(warrior, "Warrior", domain.FactionPlayer, domain.Position{X: 1, Y: 1}).
					Spawn(tt.archer, "Archer", domain.FactionHostile, tt.pos).
					Build()
			})
			if err != nil {
				t.Fatalf("NewMatch: %v", err)
			}

			for round := 0; round < 3 && !m.IsOver(); round++ {
				if _, reason := m.EndTurn("Warrior"); reason != systems.RejectNone {
					t.Fatalf("round %d: EndTurn rejected: %s", round, reason)
				}
				m.RunHostileTurn()
			}

			hp := m.Player().HP
			a := m.Unit("Archer")
			if hp == warrior.MaxHP && a.Pos == tt.pos {
				t.Errorf("archer stood still for 3 rounds: warrior hp=%d archer pos=%v", hp, a.Pos)
			}
		})
	}
}
