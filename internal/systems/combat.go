package systems

import (
	"fmt"
	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// CastResult - результат применения способности
type CastResult struct {
	OK      bool
	Reason  Rejection
	Ability string
	Target  *domain.Unit // nil, если клетка была пустой
	Damage  int
	Healed  int
	Effect  string // имя наложенного эффекта
	Died    bool   // цель погибла; убрать ее из матча - задача вызывающего
	Message string // текст для лога боя
}

// CastAbility применяет способность caster в клетку target.
//
// Очки действия списываются только если способность разрешилась.
// Урон уменьшается защитными баффами цели, лечение усиливается баффами
// лечения получателя. Вторичный эффект вешается на цель, если способность
// требует цели, иначе на самого заклинателя.
func CastAbility(g *domain.Grid, caster *domain.Unit, ab domain.Ability, target domain.Position) CastResult {
	res := CastResult{Ability: ab.Name}

	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"caster":    caster.ID,
		"ability":   ab.Name,
		"target":    target.String(),
	})

	// --- Проверка условий ---

	if ab.Cost > caster.Action {
		res.Reason = RejectInsufficientAction
		combatLogger.WithField("action", caster.Action).Debug("Cast rejected: not enough action points.")
		return res
	}
	if !g.IsValidPosition(target) {
		res.Reason = RejectInvalidPosition
		combatLogger.Debug("Cast rejected: outside the grid.")
		return res
	}
	if !ab.Range.Covers(caster.Pos.ManhattanTo(target)) {
		res.Reason = RejectOutOfRange
		combatLogger.Debug("Cast rejected: out of range.")
		return res
	}
	if ab.RequiresLOS && !HasLineOfSight(g, caster.Pos, target) {
		res.Reason = RejectNoLineOfSight
		combatLogger.Debug("Cast rejected: no line of sight.")
		return res
	}

	victim := g.GetOccupantAt(target)
	if ab.RequiresTarget && victim == nil {
		res.Reason = RejectNoTarget
		combatLogger.Debug("Cast rejected: no unit in target cell.")
		return res
	}
	// Себя атаковать нельзя
	if ab.Kind == domain.AbilityDamage && victim == caster {
		res.Reason = RejectNoTarget
		combatLogger.Debug("Cast rejected: caster targeted itself.")
		return res
	}

	// --- Применение ---

	caster.SpendAction(ab.Cost)
	res.OK = true
	res.Target = victim

	if victim != nil {
		switch ab.Kind {
		case domain.AbilityDamage:
			res.Damage, res.Died = victim.TakeDamage(ab.Magnitude)
		case domain.AbilityHeal:
			res.Healed = victim.Heal(ab.Magnitude)
		}
	}

	if ab.Secondary != nil {
		holder := caster
		if ab.RequiresTarget {
			holder = victim
		}
		if holder != nil && holder.IsAlive() {
			holder.AddEffect(ab.Secondary.Instantiate(caster.ID))
			res.Effect = ab.Secondary.Name
		}
	}

	res.Message = describeCast(caster, res)

	fields := logrus.Fields{
		"damage": res.Damage,
		"healed": res.Healed,
		"died":   res.Died,
		"action": caster.Action,
	}
	if victim != nil {
		fields["victim"] = victim.ID
		fields["victim_hp"] = victim.HP
	}
	combatLogger.WithFields(fields).Info("Cast resolved.")

	return res
}

func describeCast(caster *domain.Unit, res CastResult) string {
	msg := fmt.Sprintf("%s применяет %s.", caster.ID, res.Ability)

	if res.Target != nil {
		switch {
		case res.Damage > 0:
			msg = fmt.Sprintf("%s применяет %s: %d урона по %s.", caster.ID, res.Ability, res.Damage, res.Target.ID)
		case res.Healed > 0:
			msg = fmt.Sprintf("%s применяет %s: %s восстанавливает %d HP.", caster.ID, res.Ability, res.Target.ID, res.Healed)
		}
	}
	if res.Effect != "" {
		msg += fmt.Sprintf(" Эффект: %s.", res.Effect)
	}
	if res.Died {
		msg += fmt.Sprintf(" %s погибает.", res.Target.ID)
	}
	return msg
}
