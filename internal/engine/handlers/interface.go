package handlers

import (
	"encoding/json"
	"tactics-server/internal/domain"
	"tactics-server/internal/systems"
)

// Arena - команды боя, доступные хендлерам. Реализуется engine.Match.
// Хендлеры не знают о движке, только об этом контракте.
type Arena interface {
	Move(actor domain.UnitID, dest domain.Position) systems.MoveResult
	Cast(actor domain.UnitID, ability string, target domain.Position) systems.CastResult
	EndTurn(actor domain.UnitID) (domain.TurnReport, systems.Rejection)
	Reset() error
}

// Context передает хендлеру бой и того, от чьего имени пришла команда.
type Context struct {
	Arena Arena
	Actor domain.UnitID // Юнит игрока этой сессии
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи инстанса напрямую, он возвращает данные.
type Result struct {
	Msg     string   // Текст лога
	MsgType string   // Тип лога (INFO, COMBAT, MOVE, ERROR)
	Extra   []string // Дополнительные записи (эффекты начала хода), тип INFO
}

// HandlerFunc - это контракт для любой команды (MOVE, CAST, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Rejected превращает отказ ядра в запись лога для игрока.
func Rejected(reason systems.Rejection) Result {
	return Result{Msg: reason.Message(), MsgType: "ERROR"}
}
