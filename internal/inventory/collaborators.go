package inventory

import (
	"time"

	"armory-server/internal/domain"
)

// PresentationHandle - видимое представление оружия (модель в руках).
// Длительности, которые возвращают Play*, задают время ожидания фаз перехода.
type PresentationHandle interface {
	PlayPutAway() time.Duration
	PlayTakeOut() time.Duration
	SetVisible(visible bool)
}

// AmmoReporter - опциональное расширение PresentationHandle для HUD.
type AmmoReporter interface {
	Ammo() (loaded, reserve int)
}

// DropRequest - все, что нужно спавнеру, чтобы создать оружие в мире.
type DropRequest struct {
	Weapon   *domain.Weapon
	Template string
	Position domain.Vec3
	Rotation domain.Vec3
	Impulse  domain.Vec3
}

// DropSpawner создает выброшенное оружие в мире. Результат не используется.
type DropSpawner interface {
	Spawn(req DropRequest)
}

// Display получает снимок инвентаря при каждом изменении.
type Display interface {
	Show(s Snapshot)
}

// InputSource опрашивается раз в тик. Каждый Poll* сбрасывает защелку.
type InputSource interface {
	PollKey() (domain.SlotKey, bool)
	PollWheel() float64
	PollDrop() bool
	PollHide() bool
}

// Clock - игровое время (монотонное, от старта симуляции).
type Clock interface {
	Now() time.Duration
}

// PoseSource - откуда брать положение владельца при выбросе.
type PoseSource interface {
	Pose() domain.Pose
}

// Observer получает события контроллера (метрики).
type Observer interface {
	TransitionStarted(s State)
	TransitionFinished(s State)
	TransitionAborted(s State)
	RequestRejected(op string)
}

type nopObserver struct{}

func (nopObserver) TransitionStarted(State)  {}
func (nopObserver) TransitionFinished(State) {}
func (nopObserver) TransitionAborted(State)  {}
func (nopObserver) RequestRejected(string)   {}

type nopDisplay struct{}

func (nopDisplay) Show(Snapshot) {}

type nopSpawner struct{}

func (nopSpawner) Spawn(DropRequest) {}

type fixedPose struct{}

func (fixedPose) Pose() domain.Pose { return domain.Pose{Forward: domain.Vec3{Z: 1}} }
