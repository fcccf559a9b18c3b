package content

import (
	"fmt"
	"math/rand"
	"tactics-server/pkg/battlefield"
)

// Build собирает поле боя по сценарию. Для одного и того же seed
// результат всегда одинаковый (нужно для рестарта и реплеев).
func (c *Catalog) Build(scenario string, seed int64) (*battlefield.Battlefield, error) {
	sc, err := c.Scenario(scenario)
	if err != nil {
		return nil, err
	}

	b := battlefield.New(sc.Width, sc.Height, rand.New(rand.NewSource(seed))).
		WithObstacles(sc.Obstacles...).
		WithRandomObstacles(sc.RandomObstacles).
		Player(sc.Player)

	for _, r := range sc.Blocks {
		b.WithBlock(r)
	}

	for _, pl := range sc.Units {
		arch, err := c.Archetype(pl.Archetype)
		if err != nil {
			return nil, err
		}
		b.Spawn(arch, pl.ID, pl.Faction, pl.Pos)
	}

	bf, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario, err)
	}
	return bf, nil
}
