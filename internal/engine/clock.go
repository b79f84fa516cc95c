package engine

import (
	"sync/atomic"
	"time"
)

// GameClock - игровое время, кратное тику. Не зависит от стенных часов,
// поэтому реплей проигрывается с теми же дедлайнами фаз.
type GameClock struct {
	tick atomic.Int64
	dt   time.Duration
}

func NewGameClock(dt time.Duration) *GameClock {
	return &GameClock{dt: dt}
}

// Now - inventory.Clock.
func (c *GameClock) Now() time.Duration { return time.Duration(c.tick.Load()) * c.dt }

func (c *GameClock) Tick() int { return int(c.tick.Load()) }

// Advance переводит часы на следующий тик и возвращает его номер.
func (c *GameClock) Advance() int { return int(c.tick.Add(1)) }

func (c *GameClock) TickDuration() time.Duration { return c.dt }
