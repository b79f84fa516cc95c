package inventory

import "armory-server/internal/domain"

// AmmoCount - патроны активного оружия для HUD.
type AmmoCount struct {
	Loaded  int `json:"loaded"`
	Reserve int `json:"reserve"`
}

// Snapshot - копия состояния инвентаря только для чтения (HUD, отладка).
type Snapshot struct {
	State     State          `json:"state"`
	ActiveKey domain.SlotKey `json:"activeKey,omitempty"`
	Active    *domain.Weapon `json:"active,omitempty"`
	Hidden    bool           `json:"hidden,omitempty"`
	Ammo      *AmmoCount     `json:"ammo,omitempty"`
	Groups    []Group        `json:"groups"`
}

func (m *Manager) Snapshot() Snapshot {
	s := Snapshot{
		State:     m.State(),
		ActiveKey: m.activeKey,
		Active:    m.Active(),
		Hidden:    m.hidden,
		Groups:    m.reg.Groups(),
	}
	if s.Active != nil {
		if ar, ok := m.handle(s.Active).(AmmoReporter); ok {
			loaded, reserve := ar.Ammo()
			s.Ammo = &AmmoCount{Loaded: loaded, Reserve: reserve}
		}
	}
	return s
}
