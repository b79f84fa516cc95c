package systems

import (
	"fmt"

	"armory-server/internal/domain"
	"armory-server/internal/inventory"
	"armory-server/internal/world"

	"github.com/cockroachdb/errors"
)

// Ошибки подбора. Текст уходит игроку в лог.
var (
	ErrDropNotFound  = errors.New("оружие не найдено")
	ErrTooFar        = errors.New("слишком далеко")
	ErrHandsBusy     = errors.New("руки заняты")
	ErrNoRoom        = errors.New("некуда положить")
	ErrNothingToSwap = errors.New("нечего заменить: в руках нет оружия этой группы")
	ErrUnknownWeapon = errors.New("неизвестное оружие")
)

// reach проверяет, что объект существует и лежит в радиусе подбора.
func reach(body *world.Body, drops *world.Store, dropID string) (*world.Drop, error) {
	d, ok := drops.Get(dropID)
	if !ok {
		return nil, ErrDropNotFound
	}
	if body != nil {
		if dist := world.Distance(body.Pose().Position, d.Position); dist > domain.PickupRadius {
			return nil, errors.Wrapf(ErrTooFar, "%.1f м", dist)
		}
	}
	return d, nil
}

// --- PICKUP ---

// TryPickup забирает оружие из мира в инвентарь. Если группа заполнена и
// в руках оружие той же группы, начинается замена с выбросом текущего.
func TryPickup(m *inventory.Manager, body *world.Body, drops *world.Store, dropID string) (string, error) {
	if _, err := reach(body, drops, dropID); err != nil {
		return "", err
	}
	if m.Busy() {
		return "", ErrHandsBusy
	}

	d, ok := drops.Take(dropID)
	if !ok {
		return "", ErrDropNotFound
	}
	replacing := m.IsGroupFull(d.Weapon.Group)
	if !m.Pickup(d.Weapon) {
		// Возвращаем на то же место с тем же id
		drops.Restore(d)
		return "", ErrNoRoom
	}

	if replacing && m.Busy() {
		return fmt.Sprintf("Меняем %s на %s.", m.Active().Name, d.Weapon.Name), nil
	}
	return fmt.Sprintf("Подобрано: %s.", d.Weapon.Name), nil
}

// --- REPLACE ---

// TryReplace выбрасывает активное оружие и кладет на его место подобранное,
// даже если в группе есть свободные слоты.
func TryReplace(m *inventory.Manager, body *world.Body, drops *world.Store, dropID string) (string, error) {
	d, err := reach(body, drops, dropID)
	if err != nil {
		return "", err
	}
	if m.Busy() {
		return "", ErrHandsBusy
	}
	cur := m.Active()
	if cur == nil || cur.Group != d.Weapon.Group {
		return "", ErrNothingToSwap
	}

	taken, ok := drops.Take(dropID)
	if !ok {
		return "", ErrDropNotFound
	}
	if !m.ReplaceActive(taken.Weapon) {
		drops.Restore(taken)
		return "", ErrNoRoom
	}
	return fmt.Sprintf("Меняем %s на %s.", cur.Name, taken.Weapon.Name), nil
}

// --- GIVE ---

// WeaponSource - откуда админская выдача берет оружие (каталог).
type WeaponSource interface {
	Weapon(id domain.WeaponID) (*domain.Weapon, bool)
}

// TryGive кладет оружие из каталога прямо в инвентарь.
func TryGive(m *inventory.Manager, src WeaponSource, id domain.WeaponID) (string, error) {
	w, ok := src.Weapon(id)
	if !ok {
		return "", errors.Wrapf(ErrUnknownWeapon, "%q", id)
	}
	if m.Busy() {
		return "", ErrHandsBusy
	}
	if !m.AddWeapon(w) {
		return "", ErrNoRoom
	}
	return fmt.Sprintf("Выдано: %s.", w.Name), nil
}
