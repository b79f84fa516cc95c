package systems

import (
	"fmt"

	"armory-server/internal/inventory"
	"armory-server/internal/presentation"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotReady      = errors.New("оружие не в руках")
	ErrEmptyMagazine = errors.New("магазин пуст")
	ErrNoAmmo        = errors.New("нечем перезарядить")
)

// ready возвращает модель оружия, которое сейчас в руках и видно.
func ready(m *inventory.Manager, rig *presentation.Rig) (*presentation.View, error) {
	if m.Busy() {
		return nil, ErrHandsBusy
	}
	w := m.Active()
	if w == nil || m.Hidden() {
		return nil, ErrNotReady
	}
	v, ok := rig.View(w.ID)
	if !ok {
		return nil, errors.Wrapf(ErrNotReady, "нет модели %s", w.ID)
	}
	return v, nil
}

// TryFire тратит один патрон активного оружия.
func TryFire(m *inventory.Manager, rig *presentation.Rig) error {
	v, err := ready(m, rig)
	if err != nil {
		return err
	}
	if !v.Consume(1) {
		return ErrEmptyMagazine
	}
	return nil
}

// TryReload добивает магазин из запаса.
func TryReload(m *inventory.Manager, rig *presentation.Rig) (string, error) {
	v, err := ready(m, rig)
	if err != nil {
		return "", err
	}
	n := v.Reload()
	if n == 0 {
		return "", ErrNoAmmo
	}
	loaded, reserve := v.Ammo()
	return fmt.Sprintf("Перезарядка: +%d (%d/%d).", n, loaded, reserve), nil
}
