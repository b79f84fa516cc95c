package engine

import (
	"armory-server/internal/domain"
	"armory-server/internal/inventory"
	"armory-server/internal/presentation"
	"armory-server/internal/world"
	"armory-server/pkg/api"
)

// Session - подключенный игрок: его инвентарь, руки, тело в мире
// и накопленный за тик ввод.
type Session struct {
	ID        domain.PlayerID
	Inventory *inventory.Manager
	Rig       *presentation.Rig
	Input     *inventory.Latch
	Body      *world.Body

	JoinedTick int
	Logs       []api.LogEntry // новые записи с прошлого HUD

	logSeq int
	dirty  bool // инвентарь изменился, нужен HUD
}

func newSession(id domain.PlayerID, tick int) *Session {
	return &Session{
		ID:         id,
		Input:      &inventory.Latch{},
		Body:       world.NewBody(),
		JoinedTick: tick,
		Logs:       []api.LogEntry{},
		dirty:      true,
	}
}

// Show - inventory.Display. Сам HUD собирается в конце тика,
// здесь только отмечаем, что он устарел.
func (s *Session) Show(inventory.Snapshot) { s.dirty = true }

// Dirty - нужно ли отправить игроку HUD.
func (s *Session) Dirty() bool { return s.dirty || len(s.Logs) > 0 }

func (s *Session) flushed() {
	s.dirty = false
	s.Logs = []api.LogEntry{}
}
