package actions

import (
	"fmt"
	"tactics-server/internal/domain"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	res := ctx.Arena.Move(ctx.Actor, domain.Position{X: p.X, Y: p.Y})
	if !res.OK {
		return handlers.Rejected(res.Reason), nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("%s перемещается %s -> %s.", ctx.Actor, res.From, res.To),
		MsgType: "MOVE",
	}, nil
}
