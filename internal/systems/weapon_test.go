package systems

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestTryFire(t *testing.T) {
	fx := newFixture(t)

	if err := TryFire(fx.inv, fx.rig); !errors.Is(err, ErrNotReady) {
		t.Fatalf("empty hands: expected ErrNotReady, got %v", err)
	}

	if !fx.inv.ActivateKey("F1") {
		t.Fatal("activate F1 rejected")
	}
	if err := TryFire(fx.inv, fx.rig); !errors.Is(err, ErrHandsBusy) {
		t.Fatalf("during take-out: expected ErrHandsBusy, got %v", err)
	}
	fx.settle()

	// Магазин пистолета - 12
	for i := 0; i < 12; i++ {
		if err := TryFire(fx.inv, fx.rig); err != nil {
			t.Fatalf("shot %d: %v", i+1, err)
		}
	}
	if err := TryFire(fx.inv, fx.rig); !errors.Is(err, ErrEmptyMagazine) {
		t.Fatalf("expected ErrEmptyMagazine, got %v", err)
	}
	if ammo := fx.inv.Snapshot().Ammo; ammo == nil || ammo.Loaded != 0 || ammo.Reserve != 48 {
		t.Errorf("HUD ammo = %+v, want 0/48", ammo)
	}
}

func TestTryReload(t *testing.T) {
	fx := newFixture(t)
	if !fx.inv.ActivateKey("F1") {
		t.Fatal("activate F1 rejected")
	}
	fx.settle()

	if _, err := TryReload(fx.inv, fx.rig); !errors.Is(err, ErrNoAmmo) {
		t.Fatalf("full magazine: expected ErrNoAmmo, got %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := TryFire(fx.inv, fx.rig); err != nil {
			t.Fatal(err)
		}
	}
	msg, err := TryReload(fx.inv, fx.rig)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if msg != "Перезарядка: +5 (12/43)." {
		t.Errorf("unexpected message %q", msg)
	}

	// Скрытое оружие не стреляет
	if !fx.inv.HideActive() {
		t.Fatal("hide rejected")
	}
	fx.settle()
	if err := TryFire(fx.inv, fx.rig); !errors.Is(err, ErrNotReady) {
		t.Fatalf("hidden weapon: expected ErrNotReady, got %v", err)
	}
}

func TestTryFire_Melee(t *testing.T) {
	fx := newFixture(t)
	if !fx.inv.ActivateKey("3") {
		t.Fatal("activate knife rejected")
	}
	fx.settle()
	for i := 0; i < 3; i++ {
		if err := TryFire(fx.inv, fx.rig); err != nil {
			t.Fatalf("knife swing %d: %v", i+1, err)
		}
	}
	if _, err := TryReload(fx.inv, fx.rig); !errors.Is(err, ErrNoAmmo) {
		t.Errorf("knife reload: expected ErrNoAmmo, got %v", err)
	}
}
