package actions

import (
	"tactics-server/internal/engine/handlers"
	"tactics-server/internal/systems"
)

func HandleEndTurn(ctx handlers.Context) (handlers.Result, error) {
	report, reason := ctx.Arena.EndTurn(ctx.Actor)
	if reason != systems.RejectNone {
		return handlers.Rejected(reason), nil
	}

	return handlers.Result{
		Msg:     string(ctx.Actor) + " завершает ход.",
		MsgType: "INFO",
		Extra:   report.Messages,
	}, nil
}
