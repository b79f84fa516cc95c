package network

import (
	"sync"
	"sync/atomic"

	"armory-server/internal/domain"
	"armory-server/pkg/api"
	"armory-server/pkg/logger"
)

// Broadcaster рассылает HUD подписчикам (вебсокет-клиентам и ботам).
// Медленный подписчик не тормозит игровой цикл: если его буфер полон, сообщение отбрасывается.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[domain.PlayerID]chan api.ServerResponse
	buffer      int
	dropped     atomic.Uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[domain.PlayerID]chan api.ServerResponse),
		buffer:      100,
	}
}

// Register создает личный канал игрока. Старый канал того же игрока закрывается
// (повторный вход вытесняет прежнее соединение).
func (b *Broadcaster) Register(id domain.PlayerID) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[id]; ok {
		close(old)
		logger.WithComponent("hub").WithField("player", id).Info("Previous subscriber replaced")
	}

	ch := make(chan api.ServerResponse, b.buffer)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика, только если ch - его текущий канал.
// Так отключение вытесненного соединения не снимает подписку нового.
func (b *Broadcaster) Unregister(id domain.PlayerID, ch chan api.ServerResponse) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur, ok := b.subscribers[id]
	if !ok || cur != ch {
		return false
	}
	close(cur)
	delete(b.subscribers, id)
	return true
}

// SendTo отправляет сообщение одному игроку.
func (b *Broadcaster) SendTo(id domain.PlayerID, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		b.dropped.Add(1)
		return false
	}
}

// SubscriberCount - для метрик.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped - сколько сообщений отброшено из-за полных буферов.
func (b *Broadcaster) Dropped() uint64 { return b.dropped.Load() }

// Close закрывает все каналы (остановка сервера).
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
