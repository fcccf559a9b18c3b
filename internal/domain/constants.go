package domain

// Значения по умолчанию для архетипов, у которых они не заданы в контенте
const (
	DefaultMaxHP       = 100
	DefaultMaxMovement = 3
	DefaultMaxAction   = 5
)

// Размер поля по умолчанию
const (
	DefaultGridWidth  = 10
	DefaultGridHeight = 10
)

// MaxAbilities - сколько способностей можно выбрать клавишами 1..9.
const MaxAbilities = 9
