package domain

import "fmt"

// Polarity - знак эффекта.
type Polarity string

const (
	PolarityBuff   Polarity = "buff"
	PolarityDebuff Polarity = "debuff"
)

// Stat - характеристика, на которую влияет эффект.
type Stat string

const (
	StatDefense        Stat = "defense"         // уменьшает входящий урон
	StatHealing        Stat = "healing"         // увеличивает получаемое лечение
	StatActionPoints   Stat = "action_points"   // меняет максимум AP
	StatMovementPoints Stat = "movement_points" // меняет максимум MP
	StatDamageOverTime Stat = "damage_over_time"
)

// Effect - временный модификатор, висящий на конкретном юните.
// Принадлежит только своему юниту, между юнитами не разделяется.
type Effect struct {
	Name      string   `json:"name"`
	Polarity  Polarity `json:"polarity"`
	Stat      Stat     `json:"stat"`
	Magnitude int      `json:"magnitude"`
	Duration  int      `json:"duration"` // оставшиеся ходы владельца
	Source    UnitID   `json:"source"`
}

// EffectTemplate - статическое описание эффекта внутри способности.
type EffectTemplate struct {
	Name      string   `json:"name" yaml:"name"`
	Polarity  Polarity `json:"polarity" yaml:"polarity"`
	Stat      Stat     `json:"stat" yaml:"stat"`
	Magnitude int      `json:"magnitude" yaml:"magnitude"`
	Duration  int      `json:"duration" yaml:"duration"`
}

// Instantiate создает живой эффект от имени source.
func (t EffectTemplate) Instantiate(source UnitID) Effect {
	return Effect{
		Name:      t.Name,
		Polarity:  t.Polarity,
		Stat:      t.Stat,
		Magnitude: t.Magnitude,
		Duration:  t.Duration,
		Source:    source,
	}
}

// Validate проверяет шаблон на этапе загрузки контента.
func (t EffectTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("effect name is required")
	}
	switch t.Polarity {
	case PolarityBuff, PolarityDebuff:
	default:
		return fmt.Errorf("effect %q: unknown polarity %q", t.Name, t.Polarity)
	}
	switch t.Stat {
	case StatDefense, StatHealing, StatActionPoints, StatMovementPoints, StatDamageOverTime:
	default:
		return fmt.Errorf("effect %q: unknown stat %q", t.Name, t.Stat)
	}
	if t.Magnitude < 0 {
		return fmt.Errorf("effect %q: negative magnitude %d", t.Name, t.Magnitude)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("effect %q: duration must be positive, got %d", t.Name, t.Duration)
	}
	return nil
}
