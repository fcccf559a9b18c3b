package domain

// ReachableCells возвращает клетки в пределах манхэттенского расстояния budget
// от origin: в границах сетки, без самой origin и без занятых клеток.
//
// Это фильтр по расстоянию, а не поиск связности: клетка за стеной попадет
// в результат, даже если обойти стену за budget шагов нельзя. Подсветка ходов
// на клиенте завязана именно на это поведение.
//
// Порядок результата - построчный (Y, затем X).
func (g *Grid) ReachableCells(origin Position, budget int) []Position {
	if !g.IsValidPosition(origin) || budget <= 0 {
		return nil
	}

	minX, maxX := max(0, origin.X-budget), min(g.Width-1, origin.X+budget)
	minY, maxY := max(0, origin.Y-budget), min(g.Height-1, origin.Y+budget)

	var cells []Position
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := Position{X: x, Y: y}
			if p == origin || g.IsOccupied(p) {
				continue
			}
			if origin.ManhattanTo(p) <= budget {
				cells = append(cells, p)
			}
		}
	}
	return cells
}

// CellsInRange возвращает клетки сетки, манхэттенское расстояние до которых
// лежит в [minRange, maxRange]. Занятость не учитывается.
func (g *Grid) CellsInRange(origin Position, minRange, maxRange int) []Position {
	if !g.IsValidPosition(origin) || maxRange < minRange {
		return nil
	}

	var cells []Position
	for y := max(0, origin.Y-maxRange); y <= min(g.Height-1, origin.Y+maxRange); y++ {
		for x := max(0, origin.X-maxRange); x <= min(g.Width-1, origin.X+maxRange); x++ {
			p := Position{X: x, Y: y}
			d := origin.ManhattanTo(p)
			if d >= minRange && d <= maxRange {
				cells = append(cells, p)
			}
		}
	}
	return cells
}
