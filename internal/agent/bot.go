package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"armory-server/internal/domain"
	"armory-server/internal/engine"
	"armory-server/pkg/api"
	"armory-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bot - headless игрок для нагрузки. Подписывается на хаб как обычный
// клиент и крутит колесо каждый раз, когда переход закончился.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> вход в игру и цикл по Inbox до отмены контекста.
//  3. На HUD с состоянием IDLE (и не чаще Interval) отправляется INPUT с колесом.
//  4. HUD приходит только при изменениях, поэтому последний HUD
//     перепроверяется раз в Interval: IDLE, пришедший слишком рано, не теряется.
type Bot struct {
	ID       domain.PlayerID
	Service  *engine.GameService
	Inbox    chan api.ServerResponse
	Interval time.Duration

	direction float64
	last      api.ServerResponse // последний HUD
	lastMove  time.Time
	moves     atomic.Int64
	log       *logrus.Entry
}

func NewBot(n int, service *engine.GameService) *Bot {
	id := domain.PlayerID(fmt.Sprintf("bot_%d", n))
	direction := 1.0
	if n%2 == 1 {
		direction = -1
	}
	return &Bot{
		ID:        id,
		Service:   service,
		Inbox:     service.Hub.Register(id),
		Interval:  time.Second,
		direction: direction,
		log:       logger.WithComponent("bot").WithField("player", id),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	b.Service.Join(b.ID)
	b.log.Info("Bot joined")

	defer func() {
		b.log.WithField("moves", b.Moves()).Info("Bot shut down")
	}()

	period := b.Interval
	if period <= 0 {
		period = time.Second / domain.DefaultTickRate
	}
	retry := time.NewTicker(period)
	defer retry.Stop()

	for {
		select {
		case <-ctx.Done():
			if b.Service.Hub.Unregister(b.ID, b.Inbox) {
				// Цикл движка мог уже остановиться - не блокируемся
				select {
				case b.Service.CommandChan <- domain.InternalCommand{Action: domain.ActionLeave, Token: b.ID}:
				default:
				}
			}
			return
		case hud, ok := <-b.Inbox:
			if !ok {
				return
			}
			if hud.Type == api.TypeHUD {
				b.last = hud
			}
			b.react(hud)
		case <-retry.C:
			b.react(b.last)
		}
	}
}

// react - мозг бота: решает по HUD, крутить ли колесо.
func (b *Bot) react(hud api.ServerResponse) {
	if hud.Type != api.TypeHUD || hud.Inventory == nil || hud.Inventory.State != "IDLE" {
		return
	}
	if time.Since(b.lastMove) < b.Interval {
		return
	}

	payload, _ := json.Marshal(api.InputPayload{Wheel: b.direction})
	if err := b.Service.ProcessCommand(api.ClientCommand{
		Token:   b.ID.String(),
		Action:  domain.ActionInput.String(),
		Payload: payload,
	}); err != nil {
		b.log.WithError(err).Warn("Bot command rejected")
		return
	}
	b.lastMove = time.Now()
	b.moves.Add(1)
}

// Moves - сколько раз бот крутил колесо.
func (b *Bot) Moves() int { return int(b.moves.Load()) }
