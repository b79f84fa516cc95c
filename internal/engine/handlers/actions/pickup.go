package actions

import (
	"armory-server/internal/engine/handlers"
	"armory-server/internal/systems"
	"armory-server/pkg/api"
)

// HandlePickup обрабатывает команду PICKUP - подбор оружия с земли
func HandlePickup(ctx handlers.Context, p api.PickupPayload) (handlers.Result, error) {
	msg, err := systems.TryPickup(ctx.Inventory, ctx.Body, ctx.Drops, p.DropID)
	if err != nil {
		return handlers.Fail(err), nil
	}
	return handlers.Info(msg), nil
}
