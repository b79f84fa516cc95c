package inventory

import (
	"testing"

	"armory-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Validation(t *testing.T) {
	_, err := NewRegistry([]GroupSpec{
		{Name: "A", Keys: []domain.SlotKey{"1"}},
		{Name: "A", Keys: []domain.SlotKey{"2"}},
	}, false)
	assert.ErrorIs(t, err, ErrDuplicateGroup)

	_, err = NewRegistry([]GroupSpec{
		{Name: "A", Keys: []domain.SlotKey{"1"}},
		{Name: "B", Keys: []domain.SlotKey{"1"}},
	}, false)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = NewRegistry([]GroupSpec{{Name: "", Keys: nil}}, false)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewRegistry([]GroupSpec{{Name: "A", Keys: []domain.SlotKey{""}}}, false)
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestAddWeapon_FirstEmptySlot(t *testing.T) {
	reg, err := NewRegistry([]GroupSpec{
		{Name: "Secondary", Keys: []domain.SlotKey{"F1", "F2"}},
		{Name: "Primary", Keys: []domain.SlotKey{"1"}},
	}, false)
	require.NoError(t, err)

	require.True(t, reg.AddWeapon(pistol))
	w, _, ok := reg.Lookup("F1")
	require.True(t, ok)
	assert.Same(t, pistol, w)

	// Другая группа не трогает Secondary
	require.True(t, reg.AddWeapon(rifle))
	w, _, _ = reg.Lookup("F2")
	assert.Nil(t, w)
	w, _, _ = reg.Lookup("1")
	assert.Same(t, rifle, w)
}

func TestAddWeapon_Rejections(t *testing.T) {
	reg := newRegistry(t, false)

	assert.False(t, reg.AddWeapon(nil))
	assert.False(t, reg.AddWeapon(&domain.Weapon{ID: "x", Group: "Unknown"}))

	require.True(t, reg.AddWeapon(pistol))
	assert.False(t, reg.AddWeapon(pistol), "identical weapon must be rejected")
	assert.False(t, reg.AddWeapon(&domain.Weapon{ID: "pistol", Group: "Secondary"}), "equality is by id")
}

func TestAddWeapon_IdenticalAllowed(t *testing.T) {
	reg := newRegistry(t, true)
	require.True(t, reg.AddWeapon(pistol))
	require.True(t, reg.AddWeapon(pistol))

	a, _, _ := reg.Lookup("F1")
	b, _, _ := reg.Lookup("F2")
	assert.Same(t, pistol, a)
	assert.Same(t, pistol, b)
}

func TestAddWeapon_FullGroupOverwritesLastSlot(t *testing.T) {
	reg := newRegistry(t, false)
	require.True(t, reg.AddWeapon(rifle))
	require.True(t, reg.AddWeapon(shotgun))
	require.True(t, reg.IsGroupFull("Primary"))

	sniper := &domain.Weapon{ID: "sniper", Group: "Primary"}
	loc, evicted, ok := reg.place(sniper)
	require.True(t, ok)
	assert.Same(t, shotgun, evicted)
	key, _ := reg.KeyAt(loc)
	assert.Equal(t, domain.SlotKey("2"), key)

	first, _, _ := reg.Lookup("1")
	assert.Same(t, rifle, first)
}

func TestRemoveWeapon(t *testing.T) {
	reg := newRegistry(t, false)
	assert.False(t, reg.RemoveWeapon(pistol))

	require.True(t, reg.AddWeapon(pistol))
	require.True(t, reg.RemoveWeapon(pistol))
	_, ok := reg.FindSlotFor(pistol)
	assert.False(t, ok)
	assert.False(t, reg.RemoveWeapon(pistol))
}

func TestAddRemoveRoundTrip(t *testing.T) {
	reg := newRegistry(t, false)
	require.True(t, reg.AddWeapon(rifle))
	before := occupancy(reg.Groups())

	for _, w := range []*domain.Weapon{pistol, shotgun, knife} {
		require.True(t, reg.AddWeapon(w))
		require.True(t, reg.RemoveWeapon(w))
		assert.Equal(t, before, occupancy(reg.Groups()), "round trip for %s", w.ID)
	}
}

func TestIsGroupFull(t *testing.T) {
	reg := newRegistry(t, false)
	assert.True(t, reg.IsGroupFull("Nope"), "unknown group counts as full")
	assert.False(t, reg.IsGroupFull("Melee"))
	require.True(t, reg.AddWeapon(knife))
	assert.True(t, reg.IsGroupFull("Melee"))
}

func TestStructuralMutators(t *testing.T) {
	reg := newRegistry(t, false)
	require.True(t, reg.AddWeapon(knife))

	assert.False(t, reg.AddGroup("Melee", nil), "duplicate name")
	assert.False(t, reg.AddGroup("Heavy", []domain.SlotKey{"1"}), "key already bound")
	assert.False(t, reg.AddGroup("Heavy", []domain.SlotKey{"5", "5"}), "duplicate key")
	require.True(t, reg.AddGroup("Heavy", []domain.SlotKey{"5"}))

	g, ok := reg.GroupOf("5")
	require.True(t, ok)
	assert.Equal(t, "Heavy", g)

	require.True(t, reg.AddSlot("Melee", "4"))
	assert.False(t, reg.AddSlot("Melee", "4"))
	assert.False(t, reg.AddSlot("Nope", "9"))

	// Удаление слота перестраивает индекс: клавиши после него остаются доступны
	require.True(t, reg.RemoveSlot("Melee", "3"))
	_, _, ok = reg.Lookup("3")
	assert.False(t, ok)
	_, loc, ok := reg.Lookup("4")
	require.True(t, ok)
	key, _ := reg.KeyAt(loc)
	assert.Equal(t, domain.SlotKey("4"), key)
	assert.False(t, reg.RemoveSlot("Primary", "4"), "slot belongs to another group")

	require.True(t, reg.RemoveGroup("Primary"))
	assert.False(t, reg.HasGroup("Primary"))
	_, _, ok = reg.Lookup("1")
	assert.False(t, ok)
	w, _, ok := reg.Lookup("F1")
	require.True(t, ok)
	assert.Nil(t, w)
	assert.False(t, reg.RemoveGroup("Primary"))
}

func TestWeaponsInCyclingOrder(t *testing.T) {
	reg := newRegistry(t, false)
	for _, w := range []*domain.Weapon{knife, pistol, rifle} {
		require.True(t, reg.AddWeapon(w))
	}
	var ids []domain.WeaponID
	for _, w := range reg.Weapons() {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []domain.WeaponID{"rifle", "pistol", "knife"}, ids)
}
