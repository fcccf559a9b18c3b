package battlefield

import (
	"fmt"
	"math/rand"
	"tactics-server/internal/domain"
)

// Rect - прямоугольный блок препятствий (колонны, стены).
type Rect struct {
	X, Y, W, H int
}

// Cells возвращает клетки прямоугольника построчно.
func (r Rect) Cells() []domain.Position {
	cells := make([]domain.Position, 0, max(0, r.W*r.H))
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			cells = append(cells, domain.Position{X: x, Y: y})
		}
	}
	return cells
}

// Battlefield - готовое поле боя: сетка, юниты в порядке ходов и игрок.
type Battlefield struct {
	Grid     *domain.Grid
	Units    []*domain.Unit // порядок расстановки = порядок ходов
	PlayerID domain.UnitID
}

type spawn struct {
	arch    domain.Archetype
	id      domain.UnitID
	faction domain.Faction
	pos     domain.Position
}

// Builder предоставляет fluent API для сборки поля боя
type Builder struct {
	width           int
	height          int
	obstacles       []domain.Position
	randomObstacles int
	spawns          []spawn
	player          domain.UnitID
	rng             *rand.Rand
}

// New создает builder для поля width x height.
// rng используется только для случайных препятствий.
func New(width, height int, rng *rand.Rand) *Builder {
	return &Builder{
		width:  width,
		height: height,
		rng:    rng,
	}
}

// WithObstacles добавляет фиксированные препятствия
func (b *Builder) WithObstacles(cells ...domain.Position) *Builder {
	b.obstacles = append(b.obstacles, cells...)
	return b
}

// WithBlock заполняет прямоугольник препятствиями
func (b *Builder) WithBlock(r Rect) *Builder {
	return b.WithObstacles(r.Cells()...)
}

// WithRandomObstacles раскидывает n препятствий по свободным клеткам.
// Клетки расстановки юнитов никогда не занимаются.
func (b *Builder) WithRandomObstacles(n int) *Builder {
	b.randomObstacles = n
	return b
}

// Spawn ставит юнита архетипа arch в клетку pos
func (b *Builder) Spawn(arch domain.Archetype, id domain.UnitID, faction domain.Faction, pos domain.Position) *Builder {
	b.spawns = append(b.spawns, spawn{arch: arch, id: id, faction: faction, pos: pos})
	return b
}

// Player назначает юнита, которым управляет игрок
func (b *Builder) Player(id domain.UnitID) *Builder {
	b.player = id
	return b
}

// Build собирает поле боя
func (b *Builder) Build() (*Battlefield, error) {
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("invalid battlefield size %dx%d", b.width, b.height)
	}

	grid := domain.NewGrid(b.width, b.height)
	bf := &Battlefield{Grid: grid, PlayerID: b.player}

	// 1. Юниты
	seen := make(map[domain.UnitID]bool, len(b.spawns))
	for _, s := range b.spawns {
		if seen[s.id] {
			return nil, fmt.Errorf("duplicate unit %q", s.id)
		}
		seen[s.id] = true

		u := s.arch.Spawn(s.id, s.faction)
		if !grid.PlaceUnit(u, s.pos) {
			return nil, fmt.Errorf("cannot place unit %q at %v", s.id, s.pos)
		}
		bf.Units = append(bf.Units, u)
	}

	if b.player == "" || !seen[b.player] {
		return nil, fmt.Errorf("player unit %q is not spawned", b.player)
	}

	// 2. Фиксированные препятствия
	for _, p := range b.obstacles {
		if !grid.AddObstacle(p) {
			return nil, fmt.Errorf("cannot place obstacle at %v", p)
		}
	}

	// 3. Случайные препятствия
	if b.randomObstacles > 0 {
		if b.rng == nil {
			return nil, fmt.Errorf("random obstacles need a rng")
		}
		free := make([]domain.Position, 0, b.width*b.height)
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				p := domain.Position{X: x, Y: y}
				if !grid.IsOccupied(p) {
					free = append(free, p)
				}
			}
		}
		b.rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

		for _, p := range free[:min(b.randomObstacles, len(free))] {
			grid.AddObstacle(p)
		}
	}

	return bf, nil
}
