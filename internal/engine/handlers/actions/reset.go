package actions

import (
	"fmt"
	"tactics-server/internal/engine/handlers"
)

// HandleReset пересобирает бой с тем же сценарием и тем же зерном.
func HandleReset(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Arena.Reset(); err != nil {
		return handlers.Result{}, fmt.Errorf("reset match: %w", err)
	}
	return handlers.Result{Msg: "Бой начат заново.", MsgType: "INFO"}, nil
}
