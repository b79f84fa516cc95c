package actions

import (
	"armory-server/internal/engine/handlers"
	"armory-server/internal/systems"
)

// HandleFire тратит патрон. Сообщения нет: изменение видно по HUD.
func HandleFire(ctx handlers.Context) (handlers.Result, error) {
	if err := systems.TryFire(ctx.Inventory, ctx.Rig); err != nil {
		return handlers.Fail(err), nil
	}
	return handlers.EmptyResult(), nil
}

func HandleReload(ctx handlers.Context) (handlers.Result, error) {
	msg, err := systems.TryReload(ctx.Inventory, ctx.Rig)
	if err != nil {
		return handlers.Fail(err), nil
	}
	return handlers.Info(msg), nil
}
