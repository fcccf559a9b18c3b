package engine

import (
	"fmt"
	"tactics-server/internal/domain"
	"tactics-server/internal/systems"

	"github.com/sirupsen/logrus"
)

// RunHostileTurn проигрывает ход текущего враждебного юнита:
// одно действие по жадной политике, затем ход передается безусловно.
// Сообщения действия идут в отчете перед сообщениями начала следующего хода.
func (m *Match) RunHostileTurn() domain.TurnReport {
	npc := m.Current()
	if npc == nil || !npc.IsHostile() || m.IsOver() {
		return domain.TurnReport{}
	}

	decision := systems.ComputeHostileAction(m.Grid, npc, m.Player())
	aiLog := m.log().WithFields(logrus.Fields{
		"unit":   npc.ID,
		"action": decision.Action.String(),
	})

	var messages []string

	switch decision.Action {
	case domain.ActionCast:
		res := m.Cast(npc.ID, decision.Ability, decision.Target)
		if res.OK {
			messages = append(messages, res.Message)
		} else {
			aiLog.WithField("reason", res.Reason.String()).Debug("Hostile cast rejected")
		}

	case domain.ActionMove:
		res := m.Move(npc.ID, decision.Target)
		if res.OK {
			messages = append(messages, fmt.Sprintf("%s перемещается %s -> %s.", npc.ID, res.From, res.To))
		} else {
			aiLog.WithField("reason", res.Reason.String()).Debug("Hostile move rejected")
		}
	}

	var report domain.TurnReport
	if !m.IsOver() {
		report = m.Advance()
	}
	report.Messages = append(messages, report.Messages...)
	return report
}
