package domain

import "fmt"

// AbilityKind - что делает основной эффект способности.
type AbilityKind string

const (
	AbilityDamage AbilityKind = "damage"
	AbilityHeal   AbilityKind = "heal"
	AbilityBuff   AbilityKind = "buff" // без прямого эффекта, только Secondary
)

// Range - допустимая дистанция (манхэттен) до целевой клетки.
// Для простых способностей Min = 0.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Covers возвращает true, если дистанция попадает в [Min, Max].
func (r Range) Covers(distance int) bool {
	return distance >= r.Min && distance <= r.Max
}

// Ability - статическая запись одной способности архетипа.
// Проверяется при загрузке контента и никогда не меняется во время боя.
type Ability struct {
	Name           string          `json:"name"`
	Cost           int             `json:"apCost"`
	Range          Range           `json:"range"`
	Kind           AbilityKind     `json:"kind"`
	Magnitude      int             `json:"magnitude"`
	RequiresTarget bool            `json:"requiresTarget"`
	RequiresLOS    bool            `json:"requiresLos"` // препятствия на линии блокируют применение
	Secondary      *EffectTemplate `json:"secondary,omitempty"`
}

// Validate проверяет запись способности.
func (a Ability) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("ability name is required")
	}
	if a.Cost < 0 {
		return fmt.Errorf("ability %q: negative ap cost %d", a.Name, a.Cost)
	}
	if a.Range.Min < 0 || a.Range.Max < a.Range.Min {
		return fmt.Errorf("ability %q: invalid range [%d, %d]", a.Name, a.Range.Min, a.Range.Max)
	}
	if a.Magnitude < 0 {
		return fmt.Errorf("ability %q: negative magnitude %d", a.Name, a.Magnitude)
	}

	switch a.Kind {
	case AbilityDamage, AbilityHeal:
	case AbilityBuff:
		if a.Secondary == nil {
			return fmt.Errorf("ability %q: buff ability needs a secondary effect", a.Name)
		}
	default:
		return fmt.Errorf("ability %q: unknown kind %q", a.Name, a.Kind)
	}

	if a.Secondary != nil {
		if err := a.Secondary.Validate(); err != nil {
			return fmt.Errorf("ability %q: %w", a.Name, err)
		}
	}
	return nil
}
