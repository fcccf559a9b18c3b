package systems

import (
	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HostileDecision - что решил сделать враг в свой ход.
// После любого решения ход все равно заканчивается.
type HostileDecision struct {
	Action  domain.ActionType // ActionCast, ActionMove или ActionEndTurn
	Ability string
	Target  domain.Position
}

// ComputeHostileAction - жадная политика врага:
//  1. если основная способность достает до игрока (и видит его, когда
//     способности нужна линия видимости) - бить по его клетке;
//  2. иначе, если остались очки движения, сделать один шаг по пути к игроку;
//     шаг в клетку самого игрока не делается;
//  3. иначе просто закончить ход.
func ComputeHostileAction(g *domain.Grid, npc, player *domain.Unit) HostileDecision {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"unit":      npc.ID,
	})

	if player == nil || !player.IsAlive() {
		aiLogger.Debug("No player to chase. Action: END_TURN")
		return HostileDecision{Action: domain.ActionEndTurn}
	}

	dist := npc.Pos.ManhattanTo(player.Pos)

	if ab, ok := npc.PrimaryAbility(); ok && ab.Range.Covers(dist) {
		if !ab.RequiresLOS || HasLineOfSight(g, npc.Pos, player.Pos) {
			aiLogger.WithFields(logrus.Fields{"ability": ab.Name, "distance": dist}).Debug("Player in range. Action: CAST")
			return HostileDecision{Action: domain.ActionCast, Ability: ab.Name, Target: player.Pos}
		}
		aiLogger.WithField("ability", ab.Name).Debug("Player in range but not visible.")
	}

	if npc.Movement > 0 {
		path := g.FindPath(npc.Pos, player.Pos)
		switch {
		case len(path) > 2:
			aiLogger.WithField("step", path[1].String()).Debug("Chasing player. Action: MOVE")
			return HostileDecision{Action: domain.ActionMove, Target: path[1]}
		case len(path) == 2:
			aiLogger.Debug("Already next to player.")
		default:
			aiLogger.Debug("Path to player is blocked.")
		}
	}

	return HostileDecision{Action: domain.ActionEndTurn}
}
