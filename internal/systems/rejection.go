package systems

// Rejection - причина, по которой команда отклонена.
// Отказ - обычный результат, а не ошибка: состояние при этом не меняется.
type Rejection uint8

const (
	RejectNone Rejection = iota
	RejectInvalidPosition
	RejectOccupied
	RejectOutOfRange
	RejectNoLineOfSight
	RejectInsufficientMovement
	RejectInsufficientAction
	RejectNoTarget
	RejectNotYourTurn
	RejectUnknownAbility
	RejectMatchOver
)

var rejectionNames = map[Rejection]string{
	RejectNone:                 "none",
	RejectInvalidPosition:      "invalid_position",
	RejectOccupied:             "occupied",
	RejectOutOfRange:           "out_of_range",
	RejectNoLineOfSight:        "no_line_of_sight",
	RejectInsufficientMovement: "insufficient_movement",
	RejectInsufficientAction:   "insufficient_action",
	RejectNoTarget:             "no_target",
	RejectNotYourTurn:          "not_your_turn",
	RejectUnknownAbility:       "unknown_ability",
	RejectMatchOver:            "match_over",
}

// Тексты для клиента
var rejectionMessages = map[Rejection]string{
	RejectInvalidPosition:      "Клетка вне поля.",
	RejectOccupied:             "Клетка занята.",
	RejectOutOfRange:           "Цель вне досягаемости.",
	RejectNoLineOfSight:        "Цель не видна.",
	RejectInsufficientMovement: "Не хватает очков движения.",
	RejectInsufficientAction:   "Не хватает очков действия.",
	RejectNoTarget:             "Нет цели.",
	RejectNotYourTurn:          "Сейчас не ваш ход.",
	RejectUnknownAbility:       "Неизвестная способность.",
	RejectMatchOver:            "Бой окончен.",
}

func (r Rejection) String() string {
	if s, ok := rejectionNames[r]; ok {
		return s
	}
	return "unknown"
}

// Message возвращает текст отказа для игрока.
func (r Rejection) Message() string {
	return rejectionMessages[r]
}
