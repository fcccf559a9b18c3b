package domain

// UnitID - идентичность юнита (его имя). Уникальна в пределах матча.
type UnitID string

// Faction различает своих и врагов для выбора цели и отрисовки.
type Faction string

const (
	FactionPlayer  Faction = "player"
	FactionHostile Faction = "hostile"
)

// Unit - участник боя.
//
// Создается при подготовке матча с полными пулами и максимальным HP.
// Меняется каждый ход (сброс пулов) и после каждого разрешенного действия.
// Как только HP доходит до 0, юнит убирается из ростера, сетки и очереди
// ходов и больше не используется.
type Unit struct {
	ID        UnitID   `json:"id"`
	Archetype string   `json:"archetype"`
	Faction   Faction  `json:"faction"`
	Pos       Position `json:"pos"`

	HP          int `json:"hp"`
	MaxHP       int `json:"maxHp"`
	Movement    int `json:"movement"`
	MaxMovement int `json:"maxMovement"`
	Action      int `json:"action"`
	MaxAction   int `json:"maxAction"`

	// Abilities - порядок вставки задает порядок выбора (клавиши 1..9).
	Abilities []Ability `json:"abilities"`
	// Effects применяются в порядке списка.
	Effects []Effect `json:"effects"`
}

// IsHostile - враг ли это для игрока.
func (u *Unit) IsHostile() bool {
	return u.Faction == FactionHostile
}

// Ability ищет способность по имени.
func (u *Unit) Ability(name string) (Ability, bool) {
	for _, a := range u.Abilities {
		if a.Name == name {
			return a, true
		}
	}
	return Ability{}, false
}

// PrimaryAbility - первая способность в списке (используется ИИ).
func (u *Unit) PrimaryAbility() (Ability, bool) {
	if len(u.Abilities) == 0 {
		return Ability{}, false
	}
	return u.Abilities[0], true
}

// AddEffect вешает эффект в конец списка.
func (u *Unit) AddEffect(e Effect) {
	u.Effects = append(u.Effects, e)
}
