package engine

import (
	"sort"

	"armory-server/internal/domain"
	"armory-server/internal/inventory"
	"armory-server/internal/world"
	"armory-server/pkg/api"
)

// Радиус, в котором HUD показывает лежащее оружие (подобрать можно ближе, PickupRadius)
const dropViewRadius = 4 * domain.PickupRadius

// BuildHUD создает персональный снимок для игрока: инвентарь,
// оружие рядом и новые записи лога.
func (s *GameService) BuildHUD(sess *Session) api.ServerResponse {
	pos := sess.Body.Pose().Position

	var drops []api.DropView
	for _, d := range s.Drops.Near(pos, dropViewRadius) {
		drops = append(drops, api.DropView{
			ID:       d.ID,
			Weapon:   toWeaponView(d.Weapon),
			Position: api.Vec3{X: d.Position.X, Y: d.Position.Y, Z: d.Position.Z},
			Distance: world.Distance(pos, d.Position),
		})
	}

	// Копия логов, чтобы не было гонки данных с хабом
	logs := make([]api.LogEntry, len(sess.Logs))
	copy(logs, sess.Logs)

	return api.ServerResponse{
		Type:      api.TypeHUD,
		Tick:      s.Clock.Tick(),
		PlayerID:  sess.ID.String(),
		Inventory: BuildInventoryView(sess.Inventory.Snapshot()),
		Drops:     drops,
		Logs:      logs,
	}
}

// BuildInventoryView конвертирует снимок инвентаря в DTO.
func BuildInventoryView(snap inventory.Snapshot) *api.InventoryView {
	view := &api.InventoryView{
		State:     snap.State.String(),
		ActiveKey: string(snap.ActiveKey),
		Hidden:    snap.Hidden,
		Groups:    make([]api.GroupView, 0, len(snap.Groups)),
	}
	if snap.Active != nil {
		wv := toWeaponView(snap.Active)
		view.Active = &wv
	}
	if snap.Ammo != nil {
		view.Ammo = &api.AmmoView{Loaded: snap.Ammo.Loaded, Reserve: snap.Ammo.Reserve}
	}

	for _, g := range snap.Groups {
		gv := api.GroupView{Name: g.Name, Full: len(g.Slots) > 0, Slots: make([]api.SlotView, 0, len(g.Slots))}
		for _, sl := range g.Slots {
			sv := api.SlotView{Key: string(sl.Key), Active: sl.Key == snap.ActiveKey && snap.ActiveKey != ""}
			if sl.Occupant != nil {
				wv := toWeaponView(sl.Occupant)
				sv.Weapon = &wv
			} else {
				gv.Full = false
			}
			gv.Slots = append(gv.Slots, sv)
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}

func toWeaponView(w *domain.Weapon) api.WeaponView {
	return api.WeaponView{ID: string(w.ID), Name: w.Name, Group: w.Group}
}

// DropsInfo - строка /debug/drops.
type DropsInfo struct {
	ID     string          `json:"id"`
	Weapon domain.WeaponID `json:"weapon"`
	Owner  domain.PlayerID `json:"owner,omitempty"`
	Pos    domain.Vec3     `json:"position"`
	Tick   int             `json:"tick"`
}

// DropsDump - все оружие в мире, в порядке появления.
func (s *GameService) DropsDump() []DropsInfo {
	list := s.Drops.List()
	out := make([]DropsInfo, 0, len(list))
	for _, d := range list {
		out = append(out, DropsInfo{
			ID:     d.ID,
			Weapon: d.Weapon.ID,
			Owner:  d.Owner,
			Pos:    d.Position,
			Tick:   int(d.At / s.Clock.TickDuration()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out
}
