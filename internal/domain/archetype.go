package domain

import "fmt"

// Archetype - данные, из которых создается юнит: стартовые максимумы
// и упорядоченный список способностей. Поведение архетипа - только данные.
type Archetype struct {
	Name        string
	MaxHP       int
	MaxMovement int
	MaxAction   int
	Abilities   []Ability
}

// Validate проверяет архетип целиком, включая все способности.
func (a Archetype) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("archetype name is required")
	}
	if a.MaxHP <= 0 {
		return fmt.Errorf("archetype %q: max hp must be positive, got %d", a.Name, a.MaxHP)
	}
	if a.MaxMovement < 0 || a.MaxAction < 0 {
		return fmt.Errorf("archetype %q: negative pool maximum", a.Name)
	}
	if len(a.Abilities) > MaxAbilities {
		return fmt.Errorf("archetype %q: too many abilities (%d > %d)", a.Name, len(a.Abilities), MaxAbilities)
	}

	seen := make(map[string]bool, len(a.Abilities))
	for _, ab := range a.Abilities {
		if err := ab.Validate(); err != nil {
			return fmt.Errorf("archetype %q: %w", a.Name, err)
		}
		if seen[ab.Name] {
			return fmt.Errorf("archetype %q: duplicate ability %q", a.Name, ab.Name)
		}
		seen[ab.Name] = true
	}
	return nil
}

// Spawn создает юнита с полными пулами и максимальным HP.
// Позиция выставляется при размещении на сетке.
func (a Archetype) Spawn(id UnitID, faction Faction) *Unit {
	abilities := make([]Ability, len(a.Abilities))
	copy(abilities, a.Abilities)

	return &Unit{
		ID:          id,
		Archetype:   a.Name,
		Faction:     faction,
		HP:          a.MaxHP,
		MaxHP:       a.MaxHP,
		Movement:    a.MaxMovement,
		MaxMovement: a.MaxMovement,
		Action:      a.MaxAction,
		MaxAction:   a.MaxAction,
		Abilities:   abilities,
	}
}
