package systems

import (
	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя клетками (Брезенхэм).
// Обзор закрывают только препятствия; юниты не мешают.
// Стартовая и конечная клетки не проверяются.
func HasLineOfSight(g *domain.Grid, from, to domain.Position) bool {
	losLogger := logger.Log.WithFields(logrus.Fields{
		"component": "physics_system",
		"from":      from.String(),
		"to":        to.String(),
	})

	if from == to {
		return true
	}

	x0, y0 := from.X, from.Y
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)
	err := dx - dy

	for {
		p := domain.Position{X: x0, Y: y0}
		if p != from && p != to {
			if !g.IsValidPosition(p) || g.IsObstacle(p) {
				losLogger.WithField("blocked_at", p.String()).Debug("Line of sight blocked.")
				return false
			}
		}

		if p == to {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
