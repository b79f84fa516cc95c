package presentation

import (
	"time"

	"armory-server/internal/domain"
)

// View - серверная модель оружия в руках: видимость, анимации и магазин.
// Реализует inventory.PresentationHandle и inventory.AmmoReporter.
type View struct {
	weapon  domain.WeaponID
	putAway time.Duration
	takeOut time.Duration

	visible  bool
	magazine int
	loaded   int
	reserve  int

	// cue - последняя проигранная анимация ("put_away" / "take_out"), для /debug/players.
	cue string
}

// ViewSpec - параметры View из каталога.
type ViewSpec struct {
	Weapon   domain.WeaponID
	PutAway  time.Duration
	TakeOut  time.Duration
	Magazine int
	Reserve  int
}

func NewView(spec ViewSpec) *View {
	return &View{
		weapon:   spec.Weapon,
		putAway:  spec.PutAway,
		takeOut:  spec.TakeOut,
		magazine: spec.Magazine,
		loaded:   spec.Magazine,
		reserve:  spec.Reserve,
	}
}

func (v *View) Weapon() domain.WeaponID { return v.weapon }

func (v *View) PlayPutAway() time.Duration {
	v.cue = "put_away"
	return v.putAway
}

func (v *View) PlayTakeOut() time.Duration {
	v.cue = "take_out"
	return v.takeOut
}

func (v *View) SetVisible(visible bool) { v.visible = visible }

func (v *View) Visible() bool { return v.visible }

func (v *View) Cue() string { return v.cue }

// Ammo - патроны для HUD. Холодное оружие без магазина отдает нули.
func (v *View) Ammo() (loaded, reserve int) { return v.loaded, v.reserve }

// Consume тратит патроны из магазина. false - магазин пуст.
// Оружие без магазина (холодное) патронов не тратит.
func (v *View) Consume(n int) bool {
	if n <= 0 {
		return false
	}
	if v.magazine == 0 {
		return true
	}
	if v.loaded < n {
		return false
	}
	v.loaded -= n
	return true
}

// Reload перекладывает патроны из запаса в магазин.
func (v *View) Reload() int {
	need := v.magazine - v.loaded
	if need <= 0 || v.reserve == 0 {
		return 0
	}
	if need > v.reserve {
		need = v.reserve
	}
	v.loaded += need
	v.reserve -= need
	return need
}
