package world

import (
	"sync"

	"armory-server/internal/domain"
)

// Body - положение игрока в мире. Обновляется командой POSE,
// читается инвентарем при выбросе оружия (inventory.PoseSource).
type Body struct {
	mu   sync.RWMutex
	pose domain.Pose
}

// NewBody создает тело в начале координат, взгляд вдоль +Z.
func NewBody() *Body {
	return &Body{pose: domain.Pose{Forward: domain.Vec3{Z: 1}}}
}

func (b *Body) Pose() domain.Pose {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pose
}

// SetPose заменяет позу. Нулевое направление взгляда сохраняет прежнее.
func (b *Body) SetPose(p domain.Pose) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.Forward.Len() == 0 {
		p.Forward = b.pose.Forward
	}
	b.pose = p
}
