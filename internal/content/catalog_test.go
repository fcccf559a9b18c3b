package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"tactics-server/internal/domain"
	"tactics-server/pkg/logger"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("embedded content is invalid: %v", err)
	}

	for _, name := range []string{"Hero", "Warrior", "Archer", "Monster", "Boss"} {
		if _, err := c.Archetype(name); err != nil {
			t.Errorf("archetype %s: %v", name, err)
		}
	}

	hero, _ := c.Archetype("Hero")
	if hero.MaxHP != 120 || hero.MaxMovement != domain.DefaultMaxMovement || hero.MaxAction != domain.DefaultMaxAction {
		t.Errorf("hero stats = %+v", hero)
	}
	if len(hero.Abilities) != 2 || hero.Abilities[0].Name != "Fireball" {
		t.Errorf("hero abilities out of order: %+v", hero.Abilities)
	}

	warrior, _ := c.Archetype("Warrior")
	shield, ok := (&domain.Unit{Abilities: warrior.Abilities}).Ability("Shield")
	if !ok || shield.Range != (domain.Range{Min: 0, Max: 0}) || shield.Secondary == nil {
		t.Errorf("shield = %+v", shield)
	}

	names := c.ScenarioNames()
	if len(names) != 2 || names[0] != "crypt" || names[1] != "ruins" {
		t.Errorf("scenarios = %v", names)
	}
}

func TestBuild_Crypt(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	bf, err := c.Build("crypt", 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []struct {
		id  domain.UnitID
		pos domain.Position
	}{
		{"Hero", domain.Position{X: 1, Y: 1}},
		{"Boss Monster", domain.Position{X: 8, Y: 8}},
		{"Monster 1", domain.Position{X: 7, Y: 7}},
		{"Monster 2", domain.Position{X: 8, Y: 7}},
		{"Monster 3", domain.Position{X: 2, Y: 1}},
	}
	if len(bf.Units) != len(want) {
		t.Fatalf("got %d units", len(bf.Units))
	}
	for i, w := range want {
		u := bf.Units[i]
		if u.ID != w.id || u.Pos != w.pos {
			t.Errorf("unit %d = %s at %v, want %s at %v", i, u.ID, u.Pos, w.id, w.pos)
		}
	}
	if bf.PlayerID != "Hero" || bf.Grid.Width != 10 || bf.Grid.Height != 10 {
		t.Errorf("battlefield = %+v", bf)
	}
}

func TestBuild_UnknownScenario(t *testing.T) {
	c, _ := Default()
	if _, err := c.Build("moon", 1); !errors.Is(err, ErrUnknownScenario) {
		t.Errorf("err = %v, want ErrUnknownScenario", err)
	}
}

func TestParse_Errors(t *testing.T) {
	const monster = `
archetypes:
  - name: Monster
    abilities:
      - {name: Bite, ap_cost: 2, range: 1, kind: damage, magnitude: 25, requires_target: true}
`
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"unknown field", "archetypes:\n  - name: X\n    hp: 3\n", "field hp not found"},
		{"bad ability kind", "archetypes:\n  - name: X\n    abilities:\n      - {name: Zap, kind: lightning}\n", "unknown kind"},
		{"duplicate archetype", "archetypes:\n  - name: X\n  - name: X\n", "duplicate archetype"},
		{"unknown archetype in scenario", monster + `
scenarios:
  - name: s
    width: 5
    height: 5
    player: P
    units:
      - {id: P, archetype: Paladin, faction: player, pos: {x: 0, y: 0}}
`, "unknown archetype"},
		{"player not placed", monster + `
scenarios:
  - name: s
    width: 5
    height: 5
    player: Ghost
    units:
      - {id: M, archetype: Monster, faction: hostile, pos: {x: 0, y: 0}}
`, "is not placed"},
		{"no hostiles", monster + `
scenarios:
  - name: s
    width: 5
    height: 5
    player: P
    units:
      - {id: P, archetype: Monster, faction: player, pos: {x: 0, y: 0}}
`, "no hostile"},
		{"bad faction", monster + `
scenarios:
  - name: s
    width: 5
    height: 5
    player: P
    units:
      - {id: P, archetype: Monster, faction: neutral, pos: {x: 0, y: 0}}
`, "unknown faction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ScalarRange(t *testing.T) {
	c, err := Parse([]byte(`
archetypes:
  - name: Monster
    max_hp: 50
    abilities:
      - {name: Bite, ap_cost: 2, range: 3, kind: damage, magnitude: 25, requires_target: true}
`))
	if err != nil {
		t.Fatal(err)
	}
	m, _ := c.Archetype("Monster")
	if m.Abilities[0].Range != (domain.Range{Min: 0, Max: 3}) {
		t.Errorf("range = %+v", m.Abilities[0].Range)
	}
	if m.MaxHP != 50 || m.MaxMovement != domain.DefaultMaxMovement {
		t.Errorf("archetype = %+v", m)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, defaultContent, 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := c.Scenario("crypt"); err != nil {
		t.Error(err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
