package engine

import (
	"testing"

	"armory-server/internal/domain"
	"armory-server/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayback_ReproducesSession(t *testing.T) {
	live := newTestService(t, true)
	live.Apply(cmd(t, "p1", domain.ActionJoin, nil))
	live.Apply(cmd(t, "p1", domain.ActionGive, api.GivePayload{WeaponID: "shotgun"}))
	live.Apply(cmd(t, "p1", domain.ActionInput, api.InputPayload{Key: "1"}))
	settle(t, live)
	live.Apply(cmd(t, "p1", domain.ActionInput, api.InputPayload{Drop: true}))
	settle(t, live)
	live.Apply(cmd(t, "p2", domain.ActionJoin, nil))
	live.Step()
	drop := live.DropsDump()
	require.Len(t, drop, 1)
	live.Apply(cmd(t, "p2", domain.ActionPickup, api.PickupPayload{DropID: drop[0].ID}))
	live.Apply(cmd(t, "p2", domain.ActionInput, api.InputPayload{Wheel: -1}))
	settle(t, live)

	rs := live.ReplaySnapshot()
	replayed := newTestService(t, true)
	require.NoError(t, replayed.Playback(rs, 60))

	assert.Equal(t, live.Players(), replayed.Players())
	assert.Equal(t, live.DropsDump(), replayed.DropsDump())
	assert.Equal(t, rs.Actions, replayed.ReplaySnapshot().Actions)
}

func TestPlayback_Rejects(t *testing.T) {
	s := newTestService(t, false)
	assert.Error(t, s.Playback(nil, 0))
	assert.Error(t, s.Playback(&domain.ReplaySession{Seed: testSeed + 1}, 0))
	assert.Error(t, s.Playback(&domain.ReplaySession{Seed: testSeed, TickRate: 7}, 0))

	s.Step()
	assert.Error(t, s.Playback(&domain.ReplaySession{Seed: testSeed}, 0), "used service")
}

func TestBuildInventoryView(t *testing.T) {
	s := newTestService(t, false)
	s.Apply(cmd(t, "p1", domain.ActionJoin, nil))
	sess, ok := s.Session("p1")
	require.True(t, ok)

	view := BuildInventoryView(sess.Inventory.Snapshot())
	require.Len(t, view.Groups, 3)
	assert.Equal(t, domain.GroupPrimary, view.Groups[0].Name)
	assert.False(t, view.Groups[0].Full)
	assert.Equal(t, domain.GroupMelee, view.Groups[2].Name)
	assert.True(t, view.Groups[2].Full, "melee has one slot with the knife")
	assert.Nil(t, view.Active)
}
