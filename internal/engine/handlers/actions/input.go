package actions

import (
	"armory-server/internal/domain"
	"armory-server/internal/engine/handlers"
	"armory-server/pkg/api"
)

// HandleInput защелкивает ввод. Сам выбор оружия произойдет на ближайшем
// тике, когда движок опросит защелку (Manager.Poll).
func HandleInput(ctx handlers.Context, p api.InputPayload) (handlers.Result, error) {
	if p.Key != "" {
		ctx.Input.Press(domain.SlotKey(p.Key))
	}
	if p.Wheel != 0 {
		ctx.Input.Scroll(p.Wheel)
	}
	if p.Drop {
		ctx.Input.Drop()
	}
	if p.Hide {
		ctx.Input.Hide()
	}
	return handlers.EmptyResult(), nil
}
