package content

import (
	"fmt"
	"tactics-server/internal/domain"
	"tactics-server/pkg/battlefield"

	"gopkg.in/yaml.v3"
)

type catalogDoc struct {
	Archetypes []archetypeDoc `yaml:"archetypes"`
	Scenarios  []Scenario     `yaml:"scenarios"`
}

type archetypeDoc struct {
	Name        string       `yaml:"name"`
	MaxHP       *int         `yaml:"max_hp"`
	MaxMovement *int         `yaml:"max_movement"`
	MaxAction   *int         `yaml:"max_action"`
	Abilities   []abilityDoc `yaml:"abilities"`
}

type abilityDoc struct {
	Name           string                 `yaml:"name"`
	APCost         int                    `yaml:"ap_cost"`
	Range          rangeDoc               `yaml:"range"`
	Kind           domain.AbilityKind     `yaml:"kind"`
	Magnitude      int                    `yaml:"magnitude"`
	RequiresTarget bool                   `yaml:"requires_target"`
	RequiresLOS    bool                   `yaml:"requires_los"`
	Secondary      *domain.EffectTemplate `yaml:"secondary"`
}

// rangeDoc принимает и число (максимальный радиус), и пару {min, max}.
type rangeDoc domain.Range

func (r *rangeDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var radius int
		if err := node.Decode(&radius); err != nil {
			return fmt.Errorf("range: %w", err)
		}
		*r = rangeDoc{Min: 0, Max: radius}
		return nil
	}

	var pair domain.Range
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	*r = rangeDoc(pair)
	return nil
}

func (d archetypeDoc) toDomain() (domain.Archetype, error) {
	arch := domain.Archetype{
		Name:        d.Name,
		MaxHP:       valueOr(d.MaxHP, domain.DefaultMaxHP),
		MaxMovement: valueOr(d.MaxMovement, domain.DefaultMaxMovement),
		MaxAction:   valueOr(d.MaxAction, domain.DefaultMaxAction),
		Abilities:   make([]domain.Ability, 0, len(d.Abilities)),
	}
	for _, ad := range d.Abilities {
		arch.Abilities = append(arch.Abilities, domain.Ability{
			Name:           ad.Name,
			Cost:           ad.APCost,
			Range:          domain.Range(ad.Range),
			Kind:           ad.Kind,
			Magnitude:      ad.Magnitude,
			RequiresTarget: ad.RequiresTarget,
			RequiresLOS:    ad.RequiresLOS,
			Secondary:      ad.Secondary,
		})
	}

	if err := arch.Validate(); err != nil {
		return domain.Archetype{}, err
	}
	return arch, nil
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Scenario - стартовая расстановка боя.
type Scenario struct {
	Name            string             `yaml:"name"`
	Width           int                `yaml:"width"`
	Height          int                `yaml:"height"`
	Player          domain.UnitID      `yaml:"player"`
	Obstacles       []domain.Position  `yaml:"obstacles"`
	Blocks          []battlefield.Rect `yaml:"blocks"`
	RandomObstacles int                `yaml:"random_obstacles"`
	Units           []Placement        `yaml:"units"`
}

// Placement - один юнит сценария. Порядок в списке задает порядок ходов.
type Placement struct {
	ID        domain.UnitID   `yaml:"id"`
	Archetype string          `yaml:"archetype"`
	Faction   domain.Faction  `yaml:"faction"`
	Pos       domain.Position `yaml:"pos"`
}

func (s Scenario) placement(id domain.UnitID) (Placement, bool) {
	for _, p := range s.Units {
		if p.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}
