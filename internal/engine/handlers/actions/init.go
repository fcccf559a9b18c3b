package actions

import "tactics-server/internal/engine/handlers"

// HandleInit ничего не меняет: клиент просто получит свежий снимок.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Бой начался. Ваш юнит: " + string(ctx.Actor) + ".",
		MsgType: "INFO",
	}, nil
}
