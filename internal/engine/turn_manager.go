package engine

import (
	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"
)

// TurnManager keeps the fixed rotation of unit identities and a cursor
// pointing at the unit whose turn it is. The order never changes except by
// removal.
type TurnManager struct {
	order  []domain.UnitID
	cursor int
}

func NewTurnManager(order []domain.UnitID) *TurnManager {
	ids := make([]domain.UnitID, len(order))
	copy(ids, order)
	return &TurnManager{order: ids}
}

// Current returns the acting unit's identity.
func (tm *TurnManager) Current() (domain.UnitID, bool) {
	if len(tm.order) == 0 {
		return "", false
	}
	return tm.order[tm.cursor], true
}

// Advance moves the cursor to the next unit (wrapping) and returns it.
func (tm *TurnManager) Advance() (domain.UnitID, bool) {
	if len(tm.order) == 0 {
		return "", false
	}
	tm.cursor = (tm.cursor + 1) % len(tm.order)
	return tm.order[tm.cursor], true
}

// Remove drops a unit from the rotation (e.g. death).
//
// Removing an entry before the cursor shifts the cursor back so it keeps
// pointing at the same unit. Removing the current unit leaves the cursor on
// its predecessor, so the next Advance lands on the unit that followed it.
func (tm *TurnManager) Remove(id domain.UnitID) bool {
	idx := tm.indexOf(id)
	if idx < 0 {
		return false
	}

	switch {
	case idx < tm.cursor:
		tm.cursor--
	case idx == tm.cursor:
		tm.cursor = idx - 1
	}

	tm.order = append(tm.order[:idx], tm.order[idx+1:]...)

	if len(tm.order) == 0 {
		tm.cursor = 0
	} else if tm.cursor < 0 {
		tm.cursor = len(tm.order) - 1
	}

	logger.Log.WithField("unit", id).Debug("Unit removed from TurnManager")
	return true
}

func (tm *TurnManager) indexOf(id domain.UnitID) int {
	for i, v := range tm.order {
		if v == id {
			return i
		}
	}
	return -1
}

// Order returns a copy of the rotation.
func (tm *TurnManager) Order() []domain.UnitID {
	out := make([]domain.UnitID, len(tm.order))
	copy(out, tm.order)
	return out
}

// Index returns the cursor position.
func (tm *TurnManager) Index() int {
	return tm.cursor
}

func (tm *TurnManager) Len() int {
	return len(tm.order)
}

// DebugDump returns a snapshot of the rotation for the debug endpoints.
func (tm *TurnManager) DebugDump() []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(tm.order))
	for i, id := range tm.order {
		result = append(result, map[string]interface{}{
			"id":      id,
			"index":   i,
			"current": i == tm.cursor,
		})
	}
	return result
}
