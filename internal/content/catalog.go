// Package content загружает архетипы и сценарии из YAML.
// Все записи проверяются при загрузке: боевое ядро получает только
// корректные данные и никогда не проверяет наличие полей.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"tactics-server/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContent []byte

var (
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrUnknownScenario  = errors.New("unknown scenario")
)

// Catalog - проверенный набор архетипов и сценариев.
type Catalog struct {
	archetypes map[string]domain.Archetype
	scenarios  map[string]Scenario
}

// Default возвращает встроенный каталог.
func Default() (*Catalog, error) {
	return Parse(defaultContent)
}

// Load читает каталог из файла.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Parse разбирает и проверяет YAML-документ.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	c := &Catalog{
		archetypes: make(map[string]domain.Archetype, len(doc.Archetypes)),
		scenarios:  make(map[string]Scenario, len(doc.Scenarios)),
	}

	for _, ad := range doc.Archetypes {
		arch, err := ad.toDomain()
		if err != nil {
			return nil, err
		}
		if _, dup := c.archetypes[arch.Name]; dup {
			return nil, fmt.Errorf("duplicate archetype %q", arch.Name)
		}
		c.archetypes[arch.Name] = arch
	}

	for _, sc := range doc.Scenarios {
		if _, dup := c.scenarios[sc.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario %q", sc.Name)
		}
		if err := c.validateScenario(sc); err != nil {
			return nil, err
		}
		c.scenarios[sc.Name] = sc
	}

	return c, nil
}

// Archetype ищет архетип по имени.
func (c *Catalog) Archetype(name string) (domain.Archetype, error) {
	arch, ok := c.archetypes[name]
	if !ok {
		return domain.Archetype{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	return arch, nil
}

// Scenario ищет сценарий по имени.
func (c *Catalog) Scenario(name string) (Scenario, error) {
	sc, ok := c.scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return sc, nil
}

// ScenarioNames возвращает имена сценариев по алфавиту.
func (c *Catalog) ScenarioNames() []string {
	names := make([]string, 0, len(c.scenarios))
	for name := range c.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ArchetypeNames возвращает имена архетипов по алфавиту.
func (c *Catalog) ArchetypeNames() []string {
	names := make([]string, 0, len(c.archetypes))
	for name := range c.archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) validateScenario(sc Scenario) error {
	if sc.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("scenario %q: invalid size %dx%d", sc.Name, sc.Width, sc.Height)
	}
	if sc.RandomObstacles < 0 {
		return fmt.Errorf("scenario %q: negative random_obstacles", sc.Name)
	}

	ids := make(map[domain.UnitID]bool, len(sc.Units))
	hostiles := 0
	for _, pl := range sc.Units {
		if _, err := c.Archetype(pl.Archetype); err != nil {
			return fmt.Errorf("scenario %q, unit %q: %w", sc.Name, pl.ID, err)
		}
		if ids[pl.ID] {
			return fmt.Errorf("scenario %q: duplicate unit %q", sc.Name, pl.ID)
		}
		ids[pl.ID] = true

		switch pl.Faction {
		case domain.FactionHostile:
			hostiles++
		case domain.FactionPlayer:
		default:
			return fmt.Errorf("scenario %q, unit %q: unknown faction %q", sc.Name, pl.ID, pl.Faction)
		}
	}

	player, ok := sc.placement(sc.Player)
	if !ok {
		return fmt.Errorf("scenario %q: player unit %q is not placed", sc.Name, sc.Player)
	}
	if player.Faction != domain.FactionPlayer {
		return fmt.Errorf("scenario %q: player unit %q must have faction %q", sc.Name, sc.Player, domain.FactionPlayer)
	}
	if hostiles == 0 {
		return fmt.Errorf("scenario %q: no hostile units", sc.Name)
	}
	return nil
}
