package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"armory-server/internal/domain"
	"armory-server/internal/engine/handlers"
	"armory-server/internal/engine/handlers/actions"
	"armory-server/internal/engine/handlers/admin"
	"armory-server/internal/metrics"
	"armory-server/internal/network"
	"armory-server/internal/world"
	"armory-server/pkg/api"
	"armory-server/pkg/loadout"
	"armory-server/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrInternalAction = errors.New("action is not accepted from clients")
)

// GameService - симуляция всех игроков. Единственная горутина (Run)
// владеет состоянием; снаружи команды приходят через CommandChan.
type GameService struct {
	cfg     Config
	factory *loadout.Factory
	metrics *metrics.Collector

	Clock *GameClock
	Hub   *network.Broadcaster
	Drops *world.Store
	sched *Scheduler

	// mu защищает sessions, order и replay для читателей из HTTP (debug, автосохранение)
	mu       sync.RWMutex
	sessions map[domain.PlayerID]*Session
	order    []domain.PlayerID // порядок входа; обход всегда в нем, ради детерминизма
	replay   *domain.ReplaySession

	lastDrops int

	// Один канал на все команды, включая вход/выход: порядок их
	// применения совпадает с порядком записи в реплей.
	CommandChan chan domain.InternalCommand

	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

func NewService(cfg Config, factory *loadout.Factory, hub *network.Broadcaster, m *metrics.Collector) *GameService {
	if hub == nil {
		hub = network.NewBroadcaster()
	}
	if m == nil {
		m = metrics.New()
	}
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = time.Second / domain.DefaultTickRate
	}

	s := &GameService{
		cfg:      cfg,
		factory:  factory,
		metrics:  m,
		Clock:    NewGameClock(cfg.TickDuration),
		Hub:      hub,
		Drops:    world.NewStore(cfg.Seed),
		sched:    NewScheduler(),
		sessions: make(map[domain.PlayerID]*Session),
		replay: &domain.ReplaySession{
			Seed:      cfg.Seed,
			TickRate:  int(time.Second / cfg.TickDuration),
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
		CommandChan: make(chan domain.InternalCommand, 256),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		log:         logger.WithComponent("engine"),
	}
	s.registerHandlers()
	if err := m.WatchHub(hub); err != nil {
		s.log.WithError(err).Warn("Hub metrics not registered")
	}
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionInput] = handlers.WithPayload(actions.HandleInput)
	s.handlers[domain.ActionPose] = handlers.WithPayload(actions.HandlePose)
	s.handlers[domain.ActionPickup] = handlers.WithPayload(actions.HandlePickup)
	s.handlers[domain.ActionReplace] = handlers.WithPayload(actions.HandleReplace)
	s.handlers[domain.ActionFire] = handlers.WithEmptyPayload(actions.HandleFire)
	s.handlers[domain.ActionReload] = handlers.WithEmptyPayload(actions.HandleReload)

	s.handlers[domain.ActionGive] = handlers.WithPayload(admin.HandleGive)
	s.handlers[domain.ActionAddGroup] = handlers.WithPayload(admin.HandleAddGroup)
	s.handlers[domain.ActionRemoveGroup] = handlers.WithPayload(admin.HandleRemoveGroup)
	s.handlers[domain.ActionAddSlot] = handlers.WithPayload(admin.HandleAddSlot)
	s.handlers[domain.ActionRemoveSlot] = handlers.WithPayload(admin.HandleRemoveSlot)
}

// Seed - зерно мира (пишется в реплей).
func (s *GameService) Seed() int64 { return s.cfg.Seed }

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот).
// Token к этому моменту уже проверен транспортом.
func (s *GameService) ProcessCommand(ext api.ClientCommand) error {
	action := domain.ParseAction(ext.Action)
	if action == domain.ActionUnknown {
		return errors.Wrapf(ErrUnknownAction, "%q", ext.Action)
	}
	if action.IsInternal() {
		return errors.Wrapf(ErrInternalAction, "%s", action)
	}
	s.CommandChan <- domain.InternalCommand{
		Action:  action,
		Token:   domain.PlayerID(ext.Token),
		Payload: ext.Payload,
	}
	return nil
}

// Join / Leave идут через тот же канал, что и команды игроков.
func (s *GameService) Join(id domain.PlayerID) {
	s.CommandChan <- domain.InternalCommand{Action: domain.ActionJoin, Token: id}
}

func (s *GameService) Leave(id domain.PlayerID) {
	s.CommandChan <- domain.InternalCommand{Action: domain.ActionLeave, Token: id}
}

// --- GAME LOOP ---

// Run крутит симуляцию с частотой тика, пока не отменен ctx.
func (s *GameService) Run(ctx context.Context) {
	s.log.WithFields(logrus.Fields{
		"tick": s.cfg.TickDuration,
		"seed": s.cfg.Seed,
	}).Info("Game loop started")

	ticker := time.NewTicker(s.cfg.TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.WithField("tick", s.Clock.Tick()).Info("Game loop stopped")
			return
		case cmd := <-s.CommandChan:
			s.Apply(cmd)
		case <-ticker.C:
			s.Step()
		}
	}
}

// Apply выполняет одну команду на текущем тике.
func (s *GameService) Apply(cmd domain.InternalCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executeCommand(cmd)
}

// Step - один тик: фазы, у которых истек срок, завершаются, затем каждый
// игрок опрашивает свой ввод, затем рассылаются HUD.
func (s *GameService) Step() {
	start := time.Now()

	s.mu.Lock()
	s.Clock.Advance()
	s.advanceDue()
	for _, id := range s.order {
		sess := s.sessions[id]
		if !sess.Input.Pending() {
			continue
		}
		sess.Inventory.Poll(sess.Input)
		s.reschedule(sess)
	}
	// Фазы нулевой длины (выброс скрытого оружия) заканчиваются в том же тике
	s.advanceDue()
	s.publish()
	players := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetPlayers(players)
	s.metrics.SetDrops(s.Drops.Len())
	s.metrics.ObserveTick(time.Since(start))
}

func (s *GameService) advanceDue() {
	for _, id := range s.sched.PopDue(s.Clock.Now()) {
		sess, ok := s.sessions[id]
		if !ok {
			continue
		}
		sess.Inventory.Update()
		s.reschedule(sess)
	}
}

// reschedule ставит игрока в очередь по дедлайну текущей фазы.
func (s *GameService) reschedule(sess *Session) {
	if d, ok := sess.Inventory.Deadline(); ok {
		s.sched.Schedule(sess.ID, d)
		return
	}
	s.sched.Cancel(sess.ID)
}

// executeCommand выполняет хендлер и пишет логи. Вызывается под s.mu.
func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	switch cmd.Action {
	case domain.ActionJoin:
		if err := s.addSession(cmd.Token); err != nil {
			s.log.WithError(err).WithField("player", cmd.Token).Error("Join failed")
			return
		}
		s.record(cmd)
		return
	case domain.ActionLeave:
		if s.removeSession(cmd.Token) {
			s.record(cmd)
		}
		return
	}

	sess, ok := s.sessions[cmd.Token]
	if !ok {
		s.log.WithFields(logrus.Fields{
			"player": cmd.Token,
			"action": cmd.Action,
		}).Warn("Command from unknown player")
		return
	}
	if cmd.Action.IsAdmin() && !s.cfg.Admin {
		sess.AddLog("Админские команды отключены", domain.MsgError)
		return
	}
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	// Пишем до выполнения: отклоненная команда при проигрывании отклонится так же
	s.record(cmd)

	ctx := handlers.Context{
		Player:    sess.ID,
		Inventory: sess.Inventory,
		Input:     sess.Input,
		Body:      sess.Body,
		Rig:       sess.Rig,
		Drops:     s.Drops,
		Catalog:   s.factory.Catalog(),
	}
	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"player": sess.ID,
			"action": cmd.Action,
		}).Debug("Command rejected")
		sess.AddLog(err.Error(), domain.MsgError)
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = domain.MsgInfo
		}
		sess.AddLog(result.Msg, msgType)
	}
	switch cmd.Action {
	case domain.ActionInit, domain.ActionFire, domain.ActionReload:
		// Полный HUD / патроны поменялись без смены состояния инвентаря
		sess.dirty = true
	}

	s.reschedule(sess)
	s.metrics.CommandExecuted(cmd.Action.String())
}

func (s *GameService) addSession(id domain.PlayerID) error {
	if id == "" {
		return errors.New("empty player id")
	}
	if sess, ok := s.sessions[id]; ok {
		// Переподключение: состояние сохраняется, клиенту нужен свежий HUD
		sess.dirty = true
		return nil
	}

	sess := newSession(id, s.Clock.Tick())
	kit, err := s.factory.Build(id, loadout.Deps{
		Clock: s.Clock,
		Spawner: &world.Spawner{
			Store: s.Drops,
			Owner: id,
			Clock: s.Clock,
			OnSpawn: func(d *world.Drop) {
				sess.AddLog(fmt.Sprintf("Выброшено: %s.", d.Weapon.Name), domain.MsgInfo)
			},
		},
		Display:  sess,
		Pose:     sess.Body,
		Observer: s.metrics,
	})
	if err != nil {
		return errors.Wrapf(err, "player %s", id)
	}
	sess.Inventory = kit.Manager
	sess.Rig = kit.Rig

	s.sessions[id] = sess
	s.order = append(s.order, id)
	s.log.WithFields(logrus.Fields{
		"player":  id,
		"tick":    s.Clock.Tick(),
		"players": len(s.sessions),
	}).Info("Player joined")
	return nil
}

func (s *GameService) removeSession(id domain.PlayerID) bool {
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	s.sched.Cancel(id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.WithFields(logrus.Fields{
		"player":  id,
		"players": len(s.sessions),
	}).Info("Player left")
	return true
}

func (s *GameService) record(cmd domain.InternalCommand) {
	if !s.cfg.Record {
		return
	}
	s.replay.Actions = append(s.replay.Actions, domain.ReplayAction{
		Tick:    s.Clock.Tick(),
		Token:   cmd.Token,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

// publish рассылает HUD тем, у кого что-то изменилось. Если изменился
// мир (выбросили или подобрали оружие), HUD получают все.
func (s *GameService) publish() {
	drops := s.Drops.Len()
	worldChanged := drops != s.lastDrops
	s.lastDrops = drops

	for _, id := range s.order {
		sess := s.sessions[id]
		if !worldChanged && !sess.Dirty() {
			continue
		}
		s.Hub.SendTo(id, s.BuildHUD(sess))
		sess.flushed()
	}
}

// --- Чтение состояния (HTTP, отладка) ---

// Session возвращает сессию игрока. Только для чтения вне игрового цикла.
func (s *GameService) Session(id domain.PlayerID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// PlayerInfo - строка /debug/players.
type PlayerInfo struct {
	ID        domain.PlayerID `json:"id"`
	State     string          `json:"state"`
	ActiveKey domain.SlotKey  `json:"activeKey,omitempty"`
	Active    domain.WeaponID `json:"active,omitempty"`
	Hidden    bool            `json:"hidden,omitempty"`
	// Cue - последняя анимация активного оружия, Visible - видимые модели в руках.
	Cue     string            `json:"cue,omitempty"`
	Visible []domain.WeaponID `json:"visible"`
	Weapons int               `json:"weapons"`
	Joined  int               `json:"joinedTick"`
}

func (s *GameService) Players() []PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PlayerInfo, 0, len(s.order))
	for _, id := range s.order {
		sess := s.sessions[id]
		snap := sess.Inventory.Snapshot()
		info := PlayerInfo{
			ID:        id,
			State:     snap.State.String(),
			ActiveKey: snap.ActiveKey,
			Hidden:    snap.Hidden,
			Visible:   sess.Rig.Visible(),
			Joined:    sess.JoinedTick,
		}
		if snap.Active != nil {
			info.Active = snap.Active.ID
			if v, ok := sess.Rig.View(snap.Active.ID); ok {
				info.Cue = v.Cue()
			}
		}
		for _, g := range snap.Groups {
			for _, sl := range g.Slots {
				if sl.Occupant != nil {
					info.Weapons++
				}
			}
		}
		out = append(out, info)
	}
	return out
}

// Queue - снимок очереди дедлайнов.
func (s *GameService) Queue() []QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sched.DebugDump()
}

// ReplaySnapshot - копия записи на текущий момент (для сохранения на диск).
func (s *GameService) ReplaySnapshot() *domain.ReplaySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := *s.replay
	cp.Actions = make([]domain.ReplayAction, len(s.replay.Actions))
	copy(cp.Actions, s.replay.Actions)
	return &cp
}
