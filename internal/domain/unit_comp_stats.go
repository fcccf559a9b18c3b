package domain

// IsAlive - HP больше нуля.
func (u *Unit) IsAlive() bool {
	return u.HP > 0
}

// TakeDamage наносит урон с учетом защитных баффов (в порядке списка эффектов).
// Возвращает фактический урон и true, если юнит погиб.
func (u *Unit) TakeDamage(amount int) (int, bool) {
	if !u.IsAlive() {
		return 0, false
	}
	if amount < 0 {
		amount = 0
	}

	for _, e := range u.Effects {
		if e.Polarity == PolarityBuff && e.Stat == StatDefense {
			amount = max(0, amount-e.Magnitude)
		}
	}

	return u.loseHP(amount)
}

// Heal лечит с учетом баффов лечения. Возвращает реально восстановленное HP.
func (u *Unit) Heal(amount int) int {
	if !u.IsAlive() {
		return 0 // Мертвых не поднимаем
	}
	if amount < 0 {
		amount = 0
	}

	for _, e := range u.Effects {
		if e.Polarity == PolarityBuff && e.Stat == StatHealing {
			amount += e.Magnitude
		}
	}

	before := u.HP
	u.HP = min(u.MaxHP, u.HP+amount)
	return u.HP - before
}

// SpendAction тратит AP. false, если не хватает.
func (u *Unit) SpendAction(cost int) bool {
	if cost < 0 || u.Action < cost {
		return false
	}
	u.Action -= cost
	return true
}

// SpendMovement тратит MP. false, если не хватает.
func (u *Unit) SpendMovement(cost int) bool {
	if cost < 0 || u.Movement < cost {
		return false
	}
	u.Movement -= cost
	return true
}

// StatWithEffects возвращает максимум пула с учетом эффектов:
// баффы прибавляются, дебаффы вычитаются (не ниже нуля).
func (u *Unit) StatWithEffects(stat Stat) int {
	var value int
	switch stat {
	case StatActionPoints:
		value = u.MaxAction
	case StatMovementPoints:
		value = u.MaxMovement
	default:
		return 0
	}

	for _, e := range u.Effects {
		if e.Stat != stat {
			continue
		}
		if e.Polarity == PolarityBuff {
			value += e.Magnitude
		} else {
			value = max(0, value-e.Magnitude)
		}
	}
	return value
}

// TurnStart - что произошло с юнитом в начале его хода.
type TurnStart struct {
	Movement  int      // новый MP
	Action    int      // новый AP
	DotDamage int      // урон от эффектов длительного действия
	Expired   []string // имена снятых эффектов
	Died      bool
}

// BeginTurn выполняет начало хода юнита:
//  1. пулы сбрасываются до максимумов с учетом эффектов;
//  2. срабатывает урон длительного действия;
//  3. эффекты с Duration == 0 снимаются, остальные уменьшаются на 1.
func (u *Unit) BeginTurn() TurnStart {
	u.Action = u.StatWithEffects(StatActionPoints)
	u.Movement = u.StatWithEffects(StatMovementPoints)

	res := TurnStart{Movement: u.Movement, Action: u.Action}

	for _, e := range u.Effects {
		if e.Stat == StatDamageOverTime && e.Polarity == PolarityDebuff {
			res.DotDamage += e.Magnitude
		}
	}
	if res.DotDamage > 0 {
		// Яд игнорирует защиту
		res.DotDamage, res.Died = u.loseHP(res.DotDamage)
	}

	kept := u.Effects[:0]
	for _, e := range u.Effects {
		if e.Duration <= 0 {
			res.Expired = append(res.Expired, e.Name)
			continue
		}
		e.Duration--
		kept = append(kept, e)
	}
	u.Effects = kept

	return res
}

func (u *Unit) loseHP(amount int) (int, bool) {
	if amount > u.HP {
		amount = u.HP
	}
	u.HP -= amount
	return amount, u.HP == 0
}
