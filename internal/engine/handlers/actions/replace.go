package actions

import (
	"armory-server/internal/engine/handlers"
	"armory-server/internal/systems"
	"armory-server/pkg/api"
)

// HandleReplace - REPLACE: выбросить оружие из рук и взять на его место лежащее рядом.
func HandleReplace(ctx handlers.Context, p api.PickupPayload) (handlers.Result, error) {
	msg, err := systems.TryReplace(ctx.Inventory, ctx.Body, ctx.Drops, p.DropID)
	if err != nil {
		return handlers.Fail(err), nil
	}
	return handlers.Info(msg), nil
}
