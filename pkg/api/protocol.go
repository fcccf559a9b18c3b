package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Полный "снимок" боя после каждой обработанной команды и каждого хода врагов.
// Клиент только читает его и ничего не пересчитывает сам.
type ServerResponse struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// MatchID идентификатор матча (для /debug/matches/{id}).
	MatchID string `json:"matchId"`

	// Turn номер хода матча. Увеличивается при каждой передаче хода.
	Turn int `json:"turn"`

	// ActiveUnitID ID юнита, чей ход сейчас.
	// КЛИЕНТ ДОЛЖЕН СРАВНИВАТЬ ЭТО ПОЛЕ С MyUnitID. Если они совпадают,
	// значит, можно принимать ввод от игрока.
	ActiveUnitID string `json:"activeUnitId,omitempty"`

	// MyUnitID ID юнита, которым управляет данный клиент.
	MyUnitID string `json:"myUnitId,omitempty"`

	// Grid метаданные о размере поля.
	Grid *GridMeta `json:"grid,omitempty"`

	// Obstacles клетки с препятствиями (построчно).
	Obstacles []PositionView `json:"obstacles,omitempty"`

	// Units живые юниты в порядке ходов (для отрисовки очереди).
	Units []UnitView `json:"units"`

	// Reachable подсветка движения. Заполняется только в ход игрока.
	Reachable []PositionView `json:"reachable,omitempty"`

	// Outcome "ongoing", "victory" или "defeat".
	Outcome string `json:"outcome"`

	// Logs срез новых сообщений с прошлого снимка.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры поля, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// PositionView - клетка поля.
type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UnitView это DTO для юнита.
type UnitView struct {
	ID        string       `json:"id"`
	Archetype string       `json:"archetype"`
	Faction   string       `json:"faction"` // player, hostile
	Pos       PositionView `json:"pos"`

	HP          int `json:"hp"`
	MaxHP       int `json:"maxHp"`
	Movement    int `json:"movement"`
	MaxMovement int `json:"maxMovement"`
	Action      int `json:"action"`
	MaxAction   int `json:"maxAction"`

	// Abilities в порядке выбора (клавиши 1..9).
	Abilities []AbilityView `json:"abilities"`
	Effects   []EffectView  `json:"effects,omitempty"`
}

// AbilityView это DTO для способности.
type AbilityView struct {
	Name           string `json:"name"`
	Cost           int    `json:"apCost"`
	RangeMin       int    `json:"rangeMin"`
	RangeMax       int    `json:"rangeMax"`
	Kind           string `json:"kind"` // damage, heal, buff
	Magnitude      int    `json:"magnitude"`
	RequiresTarget bool   `json:"requiresTarget"`
	RequiresLOS    bool   `json:"requiresLos"`

	// Targets клетки, по которым способность применима прямо сейчас.
	// Только для юнита игрока в его ход.
	Targets []PositionView `json:"targets,omitempty"`
}

// EffectView это DTO для эффекта на юните.
type EffectView struct {
	Name      string `json:"name"`
	Polarity  string `json:"polarity"` // buff, debuff
	Stat      string `json:"stat"`
	Magnitude int    `json:"magnitude"`
	Duration  int    `json:"duration"`
}

// LogEntry представляет одну запись в боевом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, MOVE, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token идентификатор сессии. Выдается сервером при подключении.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, MOVE, CAST, END_TURN, RESET.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// PositionPayload используется для MOVE.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CastPayload используется для CAST: какая способность и по какой клетке.
type CastPayload struct {
	Ability string `json:"ability"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}
