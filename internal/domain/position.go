package domain

import "fmt"

// Position - клетка сетки (Coordinate).
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Четыре направления движения. Порядок фиксирован: от него зависит
// детерминированность поиска пути.
var cardinalSteps = [4]Position{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// ManhattanTo возвращает манхэттенское расстояние до другой клетки.
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// IsAdjacent возвращает true, если клетки соседние по стороне (без диагоналей).
func (p Position) IsAdjacent(other Position) bool {
	return p.ManhattanTo(other) == 1
}

// Shift возвращает новую позицию со смещением, не меняя текущую.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Neighbors возвращает 4 соседние клетки (без проверки границ).
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, step := range cardinalSteps {
		out[i] = p.Shift(step.X, step.Y)
	}
	return out
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
