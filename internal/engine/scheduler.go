package engine

import (
	"container/heap"
	"time"

	"armory-server/internal/domain"
	"armory-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Scheduler хранит по одному дедлайну на игрока. Каждый тик движок
// забирает игроков с наступившим дедлайном и продвигает их переходы,
// не трогая остальных.
type Scheduler struct {
	queue PhaseQueue
	items map[domain.PlayerID]*PhaseItem
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		queue: make(PhaseQueue, 0),
		items: make(map[domain.PlayerID]*PhaseItem),
	}
}

// Schedule ставит или переносит дедлайн игрока.
func (s *Scheduler) Schedule(id domain.PlayerID, deadline time.Duration) {
	if item, ok := s.items[id]; ok {
		if item.Deadline != deadline {
			s.queue.Update(item, deadline)
		}
		return
	}
	item := &PhaseItem{Player: id, Deadline: deadline}
	heap.Push(&s.queue, item)
	s.items[id] = item

	logger.WithComponent("scheduler").WithFields(logrus.Fields{
		"player":   id,
		"deadline": deadline,
	}).Debug("Phase scheduled")
}

// Cancel снимает игрока с очереди (переход закончился или игрок вышел).
func (s *Scheduler) Cancel(id domain.PlayerID) {
	if item, ok := s.items[id]; ok {
		heap.Remove(&s.queue, item.Index)
		delete(s.items, id)
	}
}

// PopDue снимает всех игроков с дедлайном <= now в порядке дедлайнов.
func (s *Scheduler) PopDue(now time.Duration) []domain.PlayerID {
	var due []domain.PlayerID
	for s.queue.Len() > 0 && s.queue[0].Deadline <= now {
		item := heap.Pop(&s.queue).(*PhaseItem)
		delete(s.items, item.Player)
		due = append(due, item.Player)
	}
	return due
}

func (s *Scheduler) Len() int { return s.queue.Len() }

// QueueEntry - строка /debug/queue.
type QueueEntry struct {
	Player   domain.PlayerID `json:"player"`
	Deadline time.Duration   `json:"deadline"`
	Index    int             `json:"index"`
}

// DebugDump - снимок очереди. Порядок - порядок кучи, не порядок извлечения.
func (s *Scheduler) DebugDump() []QueueEntry {
	result := make([]QueueEntry, 0, len(s.queue))
	for _, item := range s.queue {
		result = append(result, QueueEntry{Player: item.Player, Deadline: item.Deadline, Index: item.Index})
	}
	return result
}
