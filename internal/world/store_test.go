package world

import (
	"testing"
	"time"

	"armory-server/internal/domain"
	"armory-server/internal/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rifle = &domain.Weapon{ID: "rifle", Group: domain.GroupPrimary}

type tickClock time.Duration

func (c tickClock) Now() time.Duration { return time.Duration(c) }

func TestStore_DeterministicIDs(t *testing.T) {
	a, b := NewStore(7), NewStore(7)
	req := inventory.DropRequest{Weapon: rifle}

	for i := 0; i < 3; i++ {
		assert.Equal(t, a.Put(req, "p1", 0).ID, b.Put(req, "p2", 0).ID)
	}
	assert.NotEqual(t, NewStore(8).Put(req, "p1", 0).ID, NewStore(7).Put(req, "p1", 0).ID)
}

func TestStore_TakeAndRestore(t *testing.T) {
	s := NewStore(1)
	d := s.Put(inventory.DropRequest{Weapon: rifle, Template: "rifle_pickup"}, "p1", time.Second)
	require.Equal(t, 1, s.Len())

	got, ok := s.Get(d.ID)
	require.True(t, ok)
	assert.Equal(t, "rifle_pickup", got.Template)

	taken, ok := s.Take(d.ID)
	require.True(t, ok)
	assert.Zero(t, s.Len())
	_, ok = s.Take(d.ID)
	assert.False(t, ok)

	s.Restore(taken)
	s.Restore(nil)
	assert.Equal(t, 1, s.Len())
}

func TestStore_NearAndList(t *testing.T) {
	s := NewStore(1)
	far := s.Put(inventory.DropRequest{Weapon: rifle, Position: domain.Vec3{X: 10}}, "p1", 3)
	mid := s.Put(inventory.DropRequest{Weapon: rifle, Position: domain.Vec3{X: 2}}, "p1", 2)
	closest := s.Put(inventory.DropRequest{Weapon: rifle, Position: domain.Vec3{Z: 1}}, "p1", 1)

	near := s.Near(domain.Vec3{}, 2.5)
	require.Len(t, near, 2)
	assert.Equal(t, closest.ID, near[0].ID)
	assert.Equal(t, mid.ID, near[1].ID)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{closest.ID, mid.ID, far.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestSpawner(t *testing.T) {
	s := NewStore(1)
	var spawned *Drop
	sp := &Spawner{Store: s, Owner: "p1", Clock: tickClock(5 * time.Second), OnSpawn: func(d *Drop) { spawned = d }}

	var _ inventory.DropSpawner = sp
	sp.Spawn(inventory.DropRequest{Weapon: rifle, Impulse: domain.Vec3{Z: 5}})

	require.NotNil(t, spawned)
	assert.Equal(t, domain.PlayerID("p1"), spawned.Owner)
	assert.Equal(t, 5*time.Second, spawned.At)
	assert.Equal(t, 5.0, spawned.Impulse.Z)
	assert.Equal(t, 1, s.Len())
}

func TestBody(t *testing.T) {
	b := NewBody()
	assert.Equal(t, 1.0, b.Pose().Forward.Z)

	b.SetPose(domain.Pose{Position: domain.Vec3{X: 3}})
	assert.Equal(t, 3.0, b.Pose().Position.X)
	assert.Equal(t, 1.0, b.Pose().Forward.Z, "zero forward keeps previous facing")

	b.SetPose(domain.Pose{Forward: domain.Vec3{X: -1}})
	assert.Equal(t, -1.0, b.Pose().Forward.X)
}
