package engine

import (
	"os"
	"tactics-server/internal/domain"
	"tactics-server/pkg/battlefield"
	"tactics-server/pkg/logger"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var (
	testBite = domain.Ability{
		Name: "Bite", Cost: 2, Range: domain.Range{Min: 1, Max: 1},
		Kind: domain.AbilityDamage, Magnitude: 25, RequiresTarget: true,
	}
	testBolt = domain.Ability{
		Name: "Bolt", Cost: 3, Range: domain.Range{Min: 1, Max: 4},
		Kind: domain.AbilityDamage, Magnitude: 20, RequiresTarget: true, RequiresLOS: true,
	}
	testPoison = domain.Ability{
		Name: "Poison", Cost: 2, Range: domain.Range{Min: 1, Max: 3},
		Kind: domain.AbilityDamage, Magnitude: 0, RequiresTarget: true,
		Secondary: &domain.EffectTemplate{Name: "Poison", Polarity: domain.PolarityDebuff, Stat: domain.StatDamageOverTime, Magnitude: 10, Duration: 2},
	}

	heroArch    = domain.Archetype{Name: "Hero", MaxHP: 100, MaxMovement: 3, MaxAction: 5, Abilities: []domain.Ability{testBolt, testPoison}}
	monsterArch = domain.Archetype{Name: "Monster", MaxHP: 100, MaxMovement: 3, MaxAction: 5, Abilities: []domain.Ability{testBite}}
)

type placed struct {
	id      domain.UnitID
	arch    domain.Archetype
	faction domain.Faction
	pos     domain.Position
}

func hero(id domain.UnitID, x, y int) placed {
	return placed{id: id, arch: heroArch, faction: domain.FactionPlayer, pos: domain.Position{X: x, Y: y}}
}

func monster(id domain.UnitID, x, y int) placed {
	return placed{id: id, arch: monsterArch, faction: domain.FactionHostile, pos: domain.Position{X: x, Y: y}}
}

// buildOf собирает детерминированную расстановку 10x10; первый юнит - игрок.
func buildOf(units []placed, obstacles ...domain.Position) BuildFunc {
	return func() (*battlefield.Battlefield, error) {
		b := battlefield.New(10, 10, nil).
			WithObstacles(obstacles...).
			Player(units[0].id)
		for _, p := range units {
			b.Spawn(p.arch, p.id, p.faction, p.pos)
		}
		return b.Build()
	}
}

func newTestMatch(t *testing.T, units ...placed) *Match {
	t.Helper()
	m, err := NewMatch(buildOf(units))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	return m
}

func rosterIDs(m *Match) []domain.UnitID {
	var ids []domain.UnitID
	for _, u := range m.Roster() {
		ids = append(ids, u.ID)
	}
	return ids
}

func sameIDs(a, b []domain.UnitID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
