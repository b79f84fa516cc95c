package engine

import (
	"time"

	"armory-server/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Playback заново проигрывает запись на свежем сервисе, без сети и таймера.
// Команды применяются на тех же тиках, что и при записи; после последней
// делается еще settle тиков, чтобы закончились начатые переходы.
func (s *GameService) Playback(rs *domain.ReplaySession, settle int) error {
	if rs == nil {
		return errors.New("replay is nil")
	}
	if s.Clock.Tick() != 0 {
		return errors.New("playback requires a fresh service")
	}
	if rs.Seed != s.cfg.Seed {
		return errors.Newf("seed mismatch: replay %d, service %d", rs.Seed, s.cfg.Seed)
	}
	if rs.TickRate > 0 && time.Second/time.Duration(rs.TickRate) != s.cfg.TickDuration {
		return errors.Newf("tick rate mismatch: replay %d", rs.TickRate)
	}

	last := rs.LastTick()
	next := 0
	for s.Clock.Tick() <= last+settle {
		tick := s.Clock.Tick()
		for next < len(rs.Actions) && rs.Actions[next].Tick <= tick {
			a := rs.Actions[next]
			if a.Tick < tick {
				return errors.Newf("action %d out of order: tick %d < %d", next, a.Tick, tick)
			}
			s.Apply(domain.InternalCommand{Action: a.Action, Token: a.Token, Payload: a.Payload})
			next++
		}
		s.Step()
	}

	s.log.WithFields(logrus.Fields{
		"actions": len(rs.Actions),
		"ticks":   s.Clock.Tick(),
		"drops":   s.Drops.Len(),
	}).Info("Replay finished")
	return nil
}
