package domain

import "encoding/json"

// InternalCommand - команда для движка после разбора клиентского JSON.
type InternalCommand struct {
	Action  ActionType
	Token   string          // ID сессии клиента
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
