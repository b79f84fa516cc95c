package inventory

import (
	"time"

	"armory-server/internal/domain"

	"github.com/sirupsen/logrus"
)

// State - состояние контроллера переходов.
type State uint8

const (
	StateIdle         State = iota
	StateSwitchingOut       // текущее оружие убирается
	StateSwitchingIn        // новое оружие достается
	StateHiding             // оружие убирается визуально, activeKey сохраняется
	StateDropping           // оружие убирается и выбрасывается в мир
)

var stateNames = map[State]string{
	StateIdle:         "IDLE",
	StateSwitchingOut: "SWITCHING_OUT",
	StateSwitchingIn:  "SWITCHING_IN",
	StateHiding:       "HIDING",
	StateDropping:     "DROPPING",
}

func (s State) String() string {
	if v, ok := stateNames[s]; ok {
		return v
	}
	return "UNKNOWN"
}

// MarshalText - в JSON состояние уходит строкой.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

type opKind uint8

const (
	opActivate opKind = iota
	opShow
	opHide
	opDrop
	opReplace
)

// transition - выполняющийся переход. Пока он не nil, контроллер занят.
type transition struct {
	op       opKind
	state    State
	deadline time.Duration

	outgoing *domain.Weapon // что убираем
	outKey   domain.SlotKey // откуда

	targetKey domain.SlotKey // куда переключаемся
	incoming  *domain.Weapon // что достаем (для замены - известно заранее)
}

// ActivateKey переключает оружие на слот key.
// Если слот пуст, текущее оружие только убирается и руки остаются пустыми.
func (m *Manager) ActivateKey(key domain.SlotKey) bool {
	if m.Busy() {
		return m.reject("activate")
	}
	target, _, ok := m.reg.Lookup(key)
	if !ok {
		return m.reject("activate")
	}
	if key == m.activeKey {
		if m.hidden {
			return m.ShowActive()
		}
		return m.reject("activate")
	}

	current := m.Active()
	if target == nil && current == nil {
		return m.reject("activate")
	}
	if target != nil && m.handle(target) == nil {
		return m.anomaly("activate", target)
	}
	if current != nil && !m.hidden && m.handle(current) == nil {
		return m.anomaly("activate", current)
	}

	m.tr = &transition{
		op:        opActivate,
		outgoing:  current,
		outKey:    m.activeKey,
		targetKey: key,
	}

	switch {
	case current == nil:
		m.enterSwitchingIn()
	case m.hidden:
		// Оружие уже не видно, анимация убирания не нужна
		m.activeKey = ""
		m.hidden = false
		m.enterSwitchingIn()
	default:
		m.enter(StateSwitchingOut, m.handle(current).PlayPutAway())
	}
	return true
}

// ActivateWeapon - ActivateKey по оружию, а не по клавише.
func (m *Manager) ActivateWeapon(w *domain.Weapon) bool {
	loc, ok := m.reg.FindSlotFor(w)
	if !ok {
		return m.reject("activate")
	}
	key, _ := m.reg.KeyAt(loc)
	return m.ActivateKey(key)
}

// HideActive убирает оружие визуально. activeKey НЕ сбрасывается:
// это обратимое скрытие, а не снятие (см. DESIGN.md).
func (m *Manager) HideActive() bool {
	if m.Busy() {
		return m.reject("hide")
	}
	cur := m.Active()
	if cur == nil || m.hidden {
		return m.reject("hide")
	}
	h := m.handle(cur)
	if h == nil {
		return m.anomaly("hide", cur)
	}
	m.tr = &transition{op: opHide, outgoing: cur, outKey: m.activeKey}
	m.enter(StateHiding, h.PlayPutAway())
	return true
}

// ShowActive достает скрытое оружие обратно.
func (m *Manager) ShowActive() bool {
	if m.Busy() {
		return m.reject("show")
	}
	cur := m.Active()
	if cur == nil || !m.hidden {
		return m.reject("show")
	}
	if m.handle(cur) == nil {
		return m.anomaly("show", cur)
	}
	m.tr = &transition{op: opShow, targetKey: m.activeKey}
	m.enterSwitchingIn()
	return true
}

// DropActive убирает оружие, удаляет его из реестра и выбрасывает в мир.
func (m *Manager) DropActive() bool {
	if m.Busy() {
		return m.reject("drop")
	}
	cur := m.Active()
	if cur == nil {
		return m.reject("drop")
	}
	h := m.handle(cur)
	if h == nil {
		return m.anomaly("drop", cur)
	}
	m.tr = &transition{op: opDrop, outgoing: cur, outKey: m.activeKey}
	m.enter(StateDropping, m.putAwayDuration(h))
	return true
}

// ReplaceActive выбрасывает активное оружие и кладет w в его слот.
// w должно быть из той же группы.
func (m *Manager) ReplaceActive(w *domain.Weapon) bool {
	if m.Busy() || w == nil {
		return m.reject("replace")
	}
	cur := m.Active()
	if cur == nil || cur.Group != w.Group {
		return m.reject("replace")
	}
	if !m.reg.AllowIdentical() {
		n := m.reg.countOf(w)
		if cur.Same(w) {
			n--
		}
		if n > 0 {
			return m.reject("replace")
		}
	}
	h := m.handle(cur)
	if h == nil {
		return m.anomaly("replace", cur)
	}
	if m.handle(w) == nil {
		return m.anomaly("replace", w)
	}
	m.tr = &transition{
		op:       opReplace,
		outgoing: cur,
		outKey:   m.activeKey,
		incoming: w,
	}
	m.enter(StateDropping, m.putAwayDuration(h))
	return true
}

// Update продвигает переход по игровому времени. Вызывается каждый тик
// (или планировщиком, когда наступил Deadline).
func (m *Manager) Update() {
	for m.tr != nil && m.clock.Now() >= m.tr.deadline {
		m.completePhase()
	}
}

func (m *Manager) completePhase() {
	tr := m.tr
	m.obs.TransitionFinished(tr.state)

	switch tr.state {
	case StateSwitchingOut:
		if h := m.handle(tr.outgoing); h != nil {
			h.SetVisible(false)
		}
		m.activeKey = ""
		m.hidden = false
		m.enterSwitchingIn()

	case StateSwitchingIn:
		m.activeKey = tr.targetKey
		m.hidden = false
		m.finish()

	case StateHiding:
		if h := m.handle(tr.outgoing); h != nil {
			h.SetVisible(false)
		}
		m.hidden = true
		m.finish()

	case StateDropping:
		m.completeDrop()

	default:
		m.abort("unexpected state")
	}
}

func (m *Manager) completeDrop() {
	tr := m.tr
	occupant, loc, ok := m.reg.Lookup(tr.outKey)
	if !ok || !occupant.Same(tr.outgoing) {
		m.abort("outgoing weapon left its slot")
		return
	}
	if h := m.handle(tr.outgoing); h != nil {
		h.SetVisible(false)
	}
	m.spawnDrop(tr.outgoing)
	m.activeKey = ""
	m.hidden = false

	if tr.op != opReplace {
		m.reg.setOccupant(loc, nil)
		m.finish()
		return
	}

	m.reg.setOccupant(loc, tr.incoming)
	tr.targetKey = tr.outKey
	m.enterSwitchingIn()
}

// enterSwitchingIn начинает фазу доставания для tr.targetKey.
// Пустой слот завершает переход с пустыми руками.
func (m *Manager) enterSwitchingIn() {
	tr := m.tr
	w, _, ok := m.reg.Lookup(tr.targetKey)
	if !ok || w == nil {
		m.finish()
		return
	}
	h := m.handle(w)
	if h == nil {
		m.abort("presentation handle not found for incoming weapon")
		return
	}
	tr.incoming = w
	// Модель показывается до анимации доставания
	h.SetVisible(true)
	m.enter(StateSwitchingIn, h.PlayTakeOut())
}

func (m *Manager) enter(s State, d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.tr.state = s
	m.tr.deadline = m.clock.Now() + d
	m.obs.TransitionStarted(s)
	m.log.WithFields(logrus.Fields{
		"state":    s,
		"duration": d,
		"target":   m.tr.targetKey,
	}).Debug("Transition phase started")
	m.notify()
}

func (m *Manager) finish() {
	m.tr = nil
	m.notify()
}

// abort возвращает контроллер в Idle без завершения перехода.
func (m *Manager) abort(reason string) {
	m.log.WithFields(logrus.Fields{
		"state":  m.tr.state,
		"target": m.tr.targetKey,
	}).Warn("Transition aborted: " + reason)
	m.obs.TransitionAborted(m.tr.state)
	m.tr = nil
	m.notify()
}

func (m *Manager) putAwayDuration(h PresentationHandle) time.Duration {
	if m.hidden {
		return 0
	}
	return h.PlayPutAway()
}

func (m *Manager) spawnDrop(w *domain.Weapon) {
	pose := m.pose.Pose()
	fwd := pose.Forward.Normalized()
	m.spawner.Spawn(DropRequest{
		Weapon:   w,
		Template: w.Drop.Template,
		Position: pose.Position.Add(fwd.Scale(w.Drop.Offset)),
		Rotation: pose.Rotation,
		Impulse:  fwd.Scale(w.Drop.Force),
	})
}
