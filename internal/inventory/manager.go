package inventory

import (
	"time"

	"armory-server/internal/domain"
	"armory-server/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Options - зависимости менеджера. Registry и Clock обязательны,
// остальное заменяется заглушками.
type Options struct {
	Registry *Registry
	// Handles - индекс представлений, собирается один раз при старте
	// (см. presentation.Rig.Scan). Менеджер копирует карту.
	Handles  map[domain.WeaponID]PresentationHandle
	Spawner  DropSpawner
	Display  Display
	Clock    Clock
	Pose     PoseSource
	Observer Observer
	Log      *logrus.Entry
}

// Manager владеет состоянием инвентаря одного игрока: реестром слотов,
// активным слотом и единственным выполняющимся переходом.
// Не потокобезопасен: все вызовы идут из игрового цикла.
type Manager struct {
	reg     *Registry
	handles map[domain.WeaponID]PresentationHandle

	spawner DropSpawner
	display Display
	clock   Clock
	pose    PoseSource
	obs     Observer
	log     *logrus.Entry

	activeKey domain.SlotKey // "" - руки пусты
	hidden    bool           // активное оружие убрано визуально (HideActive)
	tr        *transition
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Registry == nil {
		return nil, errors.New("inventory: registry is required")
	}
	if opts.Clock == nil {
		return nil, errors.New("inventory: clock is required")
	}

	m := &Manager{
		reg:     opts.Registry,
		handles: make(map[domain.WeaponID]PresentationHandle, len(opts.Handles)),
		spawner: opts.Spawner,
		display: opts.Display,
		clock:   opts.Clock,
		pose:    opts.Pose,
		obs:     opts.Observer,
		log:     opts.Log,
	}
	for id, h := range opts.Handles {
		if h != nil {
			m.handles[id] = h
		}
	}
	if m.spawner == nil {
		m.spawner = nopSpawner{}
	}
	if m.display == nil {
		m.display = nopDisplay{}
	}
	if m.pose == nil {
		m.pose = fixedPose{}
	}
	if m.obs == nil {
		m.obs = nopObserver{}
	}
	if m.log == nil {
		m.log = logger.WithComponent("inventory")
	}
	return m, nil
}

// --- Чтение состояния ---

func (m *Manager) ActiveKey() domain.SlotKey { return m.activeKey }

func (m *Manager) Hidden() bool { return m.hidden }

// Active возвращает экипированное оружие или nil.
func (m *Manager) Active() *domain.Weapon {
	if m.activeKey == "" {
		return nil
	}
	w, _, _ := m.reg.Lookup(m.activeKey)
	return w
}

func (m *Manager) State() State {
	if m.tr == nil {
		return StateIdle
	}
	return m.tr.state
}

// Busy - выполняется ли переход.
func (m *Manager) Busy() bool { return m.tr != nil }

// Deadline - момент игрового времени, когда закончится текущая фаза.
func (m *Manager) Deadline() (time.Duration, bool) {
	if m.tr == nil {
		return 0, false
	}
	return m.tr.deadline, true
}

func (m *Manager) Groups() []Group { return m.reg.Groups() }

func (m *Manager) IsGroupFull(group string) bool { return m.reg.IsGroupFull(group) }

func (m *Manager) FindSlotFor(w *domain.Weapon) (Location, bool) { return m.reg.FindSlotFor(w) }

// --- Изменение реестра ---

// AddWeapon кладет оружие в реестр. Вытесненное из последнего слота оружие
// выбрасывается в мир; если оно было в руках, сначала убирается из рук.
// Во время перехода запрещено.
func (m *Manager) AddWeapon(w *domain.Weapon) bool {
	if m.Busy() {
		return m.reject("add")
	}
	loc, evicted, ok := m.reg.place(w)
	if !ok {
		return m.reject("add")
	}
	if evicted != nil {
		if key, _ := m.reg.KeyAt(loc); key == m.activeKey {
			m.forceDeactivate(evicted)
		}
		m.spawnDrop(evicted)
		m.log.WithFields(logrus.Fields{
			"weapon":  w.ID,
			"evicted": evicted.ID,
		}).Debug("Group full, last slot overwritten")
	}
	m.notify()
	return true
}

// RemoveWeapon освобождает слот. Если оружие было в руках, руки пустеют.
func (m *Manager) RemoveWeapon(w *domain.Weapon) bool {
	if m.Busy() {
		return m.reject("remove")
	}
	loc, ok := m.reg.FindSlotFor(w)
	if !ok {
		return m.reject("remove")
	}
	if key, _ := m.reg.KeyAt(loc); key == m.activeKey {
		m.forceDeactivate(m.reg.occupantAt(loc))
	}
	m.reg.RemoveWeapon(w)
	m.notify()
	return true
}

// Pickup - подбор оружия из мира. Если группа заполнена и в руках оружие
// той же группы, выполняется замена (ReplaceActive), иначе - AddWeapon.
func (m *Manager) Pickup(w *domain.Weapon) bool {
	if w == nil || m.Busy() {
		return m.reject("pickup")
	}
	if !m.reg.HasGroup(w.Group) {
		return m.reject("pickup")
	}
	if !m.reg.IsGroupFull(w.Group) {
		return m.AddWeapon(w)
	}
	if cur := m.Active(); cur != nil && cur.Group == w.Group {
		return m.ReplaceActive(w)
	}
	return m.AddWeapon(w)
}

func (m *Manager) AddGroup(name string, keys []domain.SlotKey) bool {
	if !m.reg.AddGroup(name, keys) {
		return m.reject("add_group")
	}
	m.notify()
	return true
}

func (m *Manager) AddSlot(group string, key domain.SlotKey) bool {
	if !m.reg.AddSlot(group, key) {
		return m.reject("add_slot")
	}
	m.notify()
	return true
}

// RemoveGroup удаляет группу. Активное оружие из нее сначала убирается из рук.
func (m *Manager) RemoveGroup(name string) bool {
	if m.Busy() || !m.reg.HasGroup(name) {
		return m.reject("remove_group")
	}
	if g, ok := m.reg.GroupOf(m.activeKey); ok && g == name {
		m.forceDeactivate(m.Active())
	}
	m.reg.RemoveGroup(name)
	m.notify()
	return true
}

// RemoveSlot удаляет слот. Активное оружие из него сначала убирается из рук.
func (m *Manager) RemoveSlot(group string, key domain.SlotKey) bool {
	if m.Busy() {
		return m.reject("remove_slot")
	}
	if g, ok := m.reg.GroupOf(key); !ok || g != group {
		return m.reject("remove_slot")
	}
	if key == m.activeKey {
		m.forceDeactivate(m.Active())
	}
	m.reg.RemoveSlot(group, key)
	m.notify()
	return true
}

// forceDeactivate убирает оружие из рук без анимации.
func (m *Manager) forceDeactivate(w *domain.Weapon) {
	if w != nil && !m.hidden {
		if h := m.handle(w); h != nil {
			h.SetVisible(false)
		}
	}
	m.log.WithFields(logrus.Fields{
		"weapon": w.String(),
		"key":    m.activeKey,
	}).Info("Active weapon force-deactivated")
	m.activeKey = ""
	m.hidden = false
}

// --- Вспомогательное ---

func (m *Manager) handle(w *domain.Weapon) PresentationHandle {
	if w == nil {
		return nil
	}
	return m.handles[w.ID]
}

func (m *Manager) reject(op string) bool {
	m.obs.RequestRejected(op)
	return false
}

// anomaly - нет представления для оружия. Не фатально, запрос отклоняется.
func (m *Manager) anomaly(op string, w *domain.Weapon) bool {
	m.log.WithFields(logrus.Fields{
		"op":     op,
		"weapon": w.String(),
	}).Warn("Presentation handle not found")
	return m.reject(op)
}

func (m *Manager) notify() {
	m.display.Show(m.Snapshot())
}
