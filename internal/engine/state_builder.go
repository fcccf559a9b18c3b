package engine

import (
	"tactics-server/internal/domain"
	"tactics-server/internal/systems"
	"tactics-server/pkg/api"
)

// BuildState создает полный снимок боя для клиента.
// Подсветка движения и целей заполняется только в ход игрока.
func (i *Instance) BuildState() api.ServerResponse {
	m := i.Match

	state := api.ServerResponse{
		Type:     "UPDATE",
		MatchID:  i.ID,
		Turn:     m.Turn(),
		MyUnitID: string(m.PlayerID),
		Grid:     &api.GridMeta{Width: m.Grid.Width, Height: m.Grid.Height},
		Units:    make([]api.UnitView, 0, m.Turns().Len()),
		Outcome:  string(m.Outcome()),
	}

	playerActive := false
	if cur := m.Current(); cur != nil && !m.IsOver() {
		state.ActiveUnitID = string(cur.ID)
		playerActive = cur.ID == m.PlayerID
	}

	for _, p := range m.Grid.Obstacles() {
		state.Obstacles = append(state.Obstacles, toPositionView(p))
	}

	for _, u := range m.Roster() {
		view := toUnitView(u)
		if playerActive && u.ID == m.PlayerID {
			for idx, ab := range u.Abilities {
				if ab.Cost > u.Action {
					continue
				}
				view.Abilities[idx].Targets = toPositionViews(systems.CastableCells(m.Grid, u, ab))
			}
		}
		state.Units = append(state.Units, view)
	}

	if playerActive {
		state.Reachable = toPositionViews(m.Reachable())
	}

	// Копия логов, чтобы снимок не делил память с инстансом
	logsCopy := make([]api.LogEntry, len(i.Logs))
	copy(logsCopy, i.Logs)
	state.Logs = logsCopy

	return state
}

// toUnitView конвертирует доменного юнита в DTO.
func toUnitView(u *domain.Unit) api.UnitView {
	view := api.UnitView{
		ID:          string(u.ID),
		Archetype:   u.Archetype,
		Faction:     string(u.Faction),
		Pos:         toPositionView(u.Pos),
		HP:          u.HP,
		MaxHP:       u.MaxHP,
		Movement:    u.Movement,
		MaxMovement: u.MaxMovement,
		Action:      u.Action,
		MaxAction:   u.MaxAction,
		Abilities:   make([]api.AbilityView, 0, len(u.Abilities)),
	}

	for _, ab := range u.Abilities {
		view.Abilities = append(view.Abilities, api.AbilityView{
			Name:           ab.Name,
			Cost:           ab.Cost,
			RangeMin:       ab.Range.Min,
			RangeMax:       ab.Range.Max,
			Kind:           string(ab.Kind),
			Magnitude:      ab.Magnitude,
			RequiresTarget: ab.RequiresTarget,
			RequiresLOS:    ab.RequiresLOS,
		})
	}

	for _, e := range u.Effects {
		view.Effects = append(view.Effects, api.EffectView{
			Name:      e.Name,
			Polarity:  string(e.Polarity),
			Stat:      string(e.Stat),
			Magnitude: e.Magnitude,
			Duration:  e.Duration,
		})
	}

	return view
}

func toPositionView(p domain.Position) api.PositionView {
	return api.PositionView{X: p.X, Y: p.Y}
}

func toPositionViews(ps []domain.Position) []api.PositionView {
	if len(ps) == 0 {
		return nil
	}
	out := make([]api.PositionView, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPositionView(p))
	}
	return out
}
