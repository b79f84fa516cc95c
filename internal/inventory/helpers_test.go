package inventory

import (
	"testing"
	"time"

	"armory-server/internal/domain"

	"github.com/stretchr/testify/require"
)

type manualClock struct{ now time.Duration }

func (c *manualClock) Now() time.Duration { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now += d }

type fakeHandle struct {
	putAway, takeOut time.Duration
	visible          bool
	calls            []string
	loaded, reserve  int
}

func (h *fakeHandle) PlayPutAway() time.Duration {
	h.calls = append(h.calls, "putaway")
	return h.putAway
}

func (h *fakeHandle) PlayTakeOut() time.Duration {
	h.calls = append(h.calls, "takeout")
	return h.takeOut
}

func (h *fakeHandle) SetVisible(v bool) {
	if v {
		h.calls = append(h.calls, "show")
	} else {
		h.calls = append(h.calls, "hide")
	}
	h.visible = v
}

type ammoHandle struct{ fakeHandle }

func (h *ammoHandle) Ammo() (int, int) { return h.loaded, h.reserve }

type recordingSpawner struct{ drops []DropRequest }

func (s *recordingSpawner) Spawn(req DropRequest) { s.drops = append(s.drops, req) }

type recordingDisplay struct{ shots []Snapshot }

func (d *recordingDisplay) Show(s Snapshot) { d.shots = append(d.shots, s) }

func (d *recordingDisplay) last() Snapshot { return d.shots[len(d.shots)-1] }

var (
	pistol = &domain.Weapon{ID: "pistol", Name: "Pistol", Group: "Secondary",
		Drop: domain.DropParams{Template: "pistol_pickup", Force: 3, Offset: 1}}
	revolver = &domain.Weapon{ID: "revolver", Name: "Revolver", Group: "Secondary",
		Drop: domain.DropParams{Template: "revolver_pickup", Force: 3, Offset: 1}}
	rifle = &domain.Weapon{ID: "rifle", Name: "Rifle", Group: "Primary",
		Drop: domain.DropParams{Template: "rifle_pickup", Force: 5, Offset: 1.5}}
	shotgun = &domain.Weapon{ID: "shotgun", Name: "Shotgun", Group: "Primary",
		Drop: domain.DropParams{Template: "shotgun_pickup", Force: 5, Offset: 1.5}}
	knife = &domain.Weapon{ID: "knife", Name: "Knife", Group: "Melee"}
	ghost = &domain.Weapon{ID: "ghost", Name: "No presentation", Group: "Primary"}
)

type fixture struct {
	m       *Manager
	clock   *manualClock
	handles map[domain.WeaponID]*fakeHandle
	spawner *recordingSpawner
	display *recordingDisplay
}

func newRegistry(t *testing.T, allowIdentical bool) *Registry {
	t.Helper()
	reg, err := NewRegistry([]GroupSpec{
		{Name: "Primary", Keys: []domain.SlotKey{"1", "2"}},
		{Name: "Secondary", Keys: []domain.SlotKey{"F1", "F2"}},
		{Name: "Melee", Keys: []domain.SlotKey{"3"}},
	}, allowIdentical)
	require.NoError(t, err)
	return reg
}

// newFixture - менеджер с тремя группами. Представления есть у всего, кроме ghost.
func newFixture(t *testing.T, weapons ...*domain.Weapon) *fixture {
	t.Helper()
	return newFixtureWith(t, newRegistry(t, false), weapons...)
}

func newFixtureWith(t *testing.T, reg *Registry, weapons ...*domain.Weapon) *fixture {
	t.Helper()
	f := &fixture{
		clock:   &manualClock{},
		handles: make(map[domain.WeaponID]*fakeHandle),
		spawner: &recordingSpawner{},
		display: &recordingDisplay{},
	}
	handles := make(map[domain.WeaponID]PresentationHandle)
	for _, w := range []*domain.Weapon{pistol, revolver, rifle, shotgun, knife} {
		h := &fakeHandle{putAway: 200 * time.Millisecond, takeOut: 300 * time.Millisecond}
		f.handles[w.ID] = h
		handles[w.ID] = h
	}
	for _, w := range weapons {
		require.True(t, reg.AddWeapon(w), "add %s", w.ID)
	}
	m, err := NewManager(Options{
		Registry: reg,
		Handles:  handles,
		Spawner:  f.spawner,
		Display:  f.display,
		Clock:    f.clock,
		Pose: staticPose{domain.Pose{
			Position: domain.Vec3{X: 10, Y: 0, Z: 5},
			Forward:  domain.Vec3{Z: 2},
			Rotation: domain.Vec3{Y: 90},
		}},
	})
	require.NoError(t, err)
	f.m = m
	return f
}

type staticPose struct{ p domain.Pose }

func (s staticPose) Pose() domain.Pose { return s.p }

// run продвигает время до завершения текущего перехода и возвращает пройденные состояния.
func (f *fixture) run() []State {
	var states []State
	for f.m.Busy() {
		states = append(states, f.m.State())
		d, _ := f.m.Deadline()
		f.clock.now = d
		f.m.Update()
	}
	return states
}

// equip - экипирует оружие по клавише и дожидается конца перехода.
func (f *fixture) equip(t *testing.T, key domain.SlotKey) {
	t.Helper()
	require.True(t, f.m.ActivateKey(key))
	f.run()
	require.Equal(t, key, f.m.ActiveKey())
}

// occupancy - карта клавиша -> id оружия для сравнения состояний.
func occupancy(groups []Group) map[domain.SlotKey]domain.WeaponID {
	out := make(map[domain.SlotKey]domain.WeaponID)
	for _, g := range groups {
		for _, s := range g.Slots {
			if s.Occupant != nil {
				out[s.Key] = s.Occupant.ID
			} else {
				out[s.Key] = ""
			}
		}
	}
	return out
}
