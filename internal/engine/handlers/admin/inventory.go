package admin

import (
	"fmt"

	"armory-server/internal/domain"
	"armory-server/internal/engine/handlers"
	"armory-server/internal/systems"
	"armory-server/pkg/api"
)

func HandleGive(ctx handlers.Context, p api.GivePayload) (handlers.Result, error) {
	msg, err := systems.TryGive(ctx.Inventory, ctx.Catalog, domain.WeaponID(p.WeaponID))
	if err != nil {
		return handlers.Fail(err), nil
	}
	return admin(msg), nil
}

func HandleAddGroup(ctx handlers.Context, p api.GroupPayload) (handlers.Result, error) {
	keys := make([]domain.SlotKey, 0, len(p.Keys))
	for _, k := range p.Keys {
		keys = append(keys, domain.SlotKey(k))
	}
	if !ctx.Inventory.AddGroup(p.Name, keys) {
		return handlers.Result{Msg: fmt.Sprintf("Группу %s добавить нельзя", p.Name), MsgType: domain.MsgError}, nil
	}
	return admin(fmt.Sprintf("Группа %s добавлена (%d слотов)", p.Name, len(keys))), nil
}

// HandleRemoveGroup удаляет группу вместе с оружием. Выброса в мир нет.
func HandleRemoveGroup(ctx handlers.Context, p api.GroupPayload) (handlers.Result, error) {
	if !ctx.Inventory.RemoveGroup(p.Name) {
		return handlers.Result{Msg: fmt.Sprintf("Группу %s удалить нельзя", p.Name), MsgType: domain.MsgError}, nil
	}
	return admin(fmt.Sprintf("Группа %s удалена", p.Name)), nil
}

func HandleAddSlot(ctx handlers.Context, p api.SlotPayload) (handlers.Result, error) {
	if !ctx.Inventory.AddSlot(p.Group, domain.SlotKey(p.Key)) {
		return handlers.Result{Msg: fmt.Sprintf("Слот %s в %s добавить нельзя", p.Key, p.Group), MsgType: domain.MsgError}, nil
	}
	return admin(fmt.Sprintf("Слот %s добавлен в %s", p.Key, p.Group)), nil
}

func HandleRemoveSlot(ctx handlers.Context, p api.SlotPayload) (handlers.Result, error) {
	if !ctx.Inventory.RemoveSlot(p.Group, domain.SlotKey(p.Key)) {
		return handlers.Result{Msg: fmt.Sprintf("Слот %s из %s удалить нельзя", p.Key, p.Group), MsgType: domain.MsgError}, nil
	}
	return admin(fmt.Sprintf("Слот %s удален из %s", p.Key, p.Group)), nil
}

func admin(msg string) handlers.Result {
	return handlers.Result{Msg: "⚡ " + msg, MsgType: domain.MsgAdmin}
}
