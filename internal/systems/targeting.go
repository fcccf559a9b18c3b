package systems

import (
	"tactics-server/internal/domain"
)

// CastableCells возвращает клетки, которые подсвечиваются при выборе
// способности: все клетки в ее радиусе; для способностей с целью только
// клетки с юнитами, для способностей с обзором только видимые.
// Клетка самого заклинателя исключается для атакующих способностей.
func CastableCells(g *domain.Grid, caster *domain.Unit, ab domain.Ability) []domain.Position {
	var cells []domain.Position
	for _, p := range g.CellsInRange(caster.Pos, ab.Range.Min, ab.Range.Max) {
		if p == caster.Pos && ab.Kind == domain.AbilityDamage {
			continue
		}
		if ab.RequiresTarget && g.GetOccupantAt(p) == nil {
			continue
		}
		if ab.RequiresLOS && !HasLineOfSight(g, caster.Pos, p) {
			continue
		}
		cells = append(cells, p)
	}
	return cells
}
