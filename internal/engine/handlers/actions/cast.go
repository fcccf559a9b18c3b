package actions

import (
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

func HandleCast(ctx handlers.Context, p api.CastPayload) (handlers.Result, error) {
	res := ctx.Arena.Cast(ctx.Actor, p.Ability, domain.Position{X: p.X, Y: p.Y})
	if !res.OK {
		return handlers.Rejected(res.Reason), nil
	}
	return handlers.Result{Msg: res.Message, MsgType: "COMBAT"}, nil
}
