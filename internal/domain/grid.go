package domain

// Grid - фиксированная прямоугольная сетка боя.
//
// Хранит занятость клеток юнитами и набор постоянных препятствий.
// Инварианты:
//   - клетка не может быть одновременно препятствием и занятой юнитом;
//   - юнит занимает ровно одну клетку, и она совпадает с его Pos;
//   - препятствия статичны после расстановки.
type Grid struct {
	Width  int
	Height int

	occupants map[Position]*Unit
	obstacles map[Position]struct{}
}

// NewGrid создает пустую сетку width x height.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:     width,
		Height:    height,
		occupants: make(map[Position]*Unit),
		obstacles: make(map[Position]struct{}),
	}
}

// IsValidPosition - только проверка границ.
func (g *Grid) IsValidPosition(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// IsOccupied возвращает true, если в клетке стоит юнит или препятствие.
func (g *Grid) IsOccupied(p Position) bool {
	if _, ok := g.occupants[p]; ok {
		return true
	}
	_, ok := g.obstacles[p]
	return ok
}

// IsObstacle возвращает true только для препятствий.
func (g *Grid) IsObstacle(p Position) bool {
	_, ok := g.obstacles[p]
	return ok
}

// GetOccupantAt возвращает юнита в клетке или nil.
func (g *Grid) GetOccupantAt(p Position) *Unit {
	return g.occupants[p]
}

// PlaceUnit ставит юнита в клетку. Возвращает false (без мутаций),
// если клетка вне сетки или занята.
func (g *Grid) PlaceUnit(u *Unit, p Position) bool {
	if !g.IsValidPosition(p) || g.IsOccupied(p) {
		return false
	}
	g.occupants[p] = u
	u.Pos = p
	return true
}

// RemoveUnit освобождает клетку и возвращает прежнего владельца (или nil).
func (g *Grid) RemoveUnit(p Position) *Unit {
	u, ok := g.occupants[p]
	if !ok {
		return nil
	}
	delete(g.occupants, p)
	return u
}

// AddObstacle ставит препятствие по тем же правилам, что и PlaceUnit.
func (g *Grid) AddObstacle(p Position) bool {
	if !g.IsValidPosition(p) || g.IsOccupied(p) {
		return false
	}
	g.obstacles[p] = struct{}{}
	return true
}

// RemoveObstacle убирает препятствие. false, если его там не было.
func (g *Grid) RemoveObstacle(p Position) bool {
	if _, ok := g.obstacles[p]; !ok {
		return false
	}
	delete(g.obstacles, p)
	return true
}

// Obstacles возвращает препятствия в порядке строк (сначала Y, потом X).
func (g *Grid) Obstacles() []Position {
	out := make([]Position, 0, len(g.obstacles))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Position{X: x, Y: y}
			if _, ok := g.obstacles[p]; ok {
				out = append(out, p)
			}
		}
	}
	return out
}

// UnitCount - количество клеток, занятых юнитами.
func (g *Grid) UnitCount() int {
	return len(g.occupants)
}
