package systems

import (
	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MoveResult - результат перемещения
type MoveResult struct {
	OK     bool
	Reason Rejection
	From   domain.Position
	To     domain.Position
	Cost   int // Потраченные очки движения
}

// MoveUnit перемещает юнита в dest.
//
// Стоимость - манхэттенское расстояние между клетками, а не длина маршрута
// в обход препятствий. При отказе ничего не меняется.
// Проверку "чей ход" делает вызывающий (Match).
func MoveUnit(g *domain.Grid, u *domain.Unit, dest domain.Position) MoveResult {
	res := MoveResult{From: u.Pos, To: dest}

	moveLogger := logger.Log.WithFields(logrus.Fields{
		"component": "movement_system",
		"unit":      u.ID,
		"from":      u.Pos.String(),
		"to":        dest.String(),
	})

	// 1. Границы
	if !g.IsValidPosition(dest) {
		res.Reason = RejectInvalidPosition
		moveLogger.Debug("Move rejected: outside the grid.")
		return res
	}

	// 2. Занятость (своя клетка тоже занята)
	if g.IsOccupied(dest) {
		res.Reason = RejectOccupied
		moveLogger.Debug("Move rejected: destination occupied.")
		return res
	}

	// 3. Бюджет
	distance := u.Pos.ManhattanTo(dest)
	if distance > u.Movement {
		res.Reason = RejectInsufficientMovement
		moveLogger.WithField("movement", u.Movement).Debug("Move rejected: not enough movement.")
		return res
	}

	if g.GetOccupantAt(u.Pos) != u {
		moveLogger.Panic("Invariant broken: unit position disagrees with grid occupancy.")
	}

	g.RemoveUnit(u.Pos)
	g.PlaceUnit(u, dest)
	u.SpendMovement(distance)

	res.OK = true
	res.Cost = distance
	moveLogger.WithFields(logrus.Fields{
		"cost":     distance,
		"movement": u.Movement,
	}).Info("Move resolved.")
	return res
}
