package actions

import (
	"fmt"

	"armory-server/internal/engine/handlers"
)

// HandleInit - первая команда клиента после рукопожатия. Ничего не меняет,
// движок в ответ отправит полный HUD.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	n := 0
	if ctx.Inventory != nil {
		for _, g := range ctx.Inventory.Groups() {
			for _, s := range g.Slots {
				if s.Occupant != nil {
					n++
				}
			}
		}
	}
	return handlers.Info(fmt.Sprintf("Добро пожаловать в арсенал. Оружия при себе: %d.", n)), nil
}
