package world

import (
	"encoding/binary"
	"sort"
	"sync"
	"time"

	"armory-server/internal/domain"
	"armory-server/internal/inventory"
	"armory-server/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Drop - выброшенное оружие, лежащее в мире.
type Drop struct {
	ID       string          `json:"id"`
	Weapon   *domain.Weapon  `json:"weapon"`
	Template string          `json:"template"`
	Position domain.Vec3     `json:"position"`
	Rotation domain.Vec3     `json:"rotation"`
	Impulse  domain.Vec3     `json:"impulse"`
	Owner    domain.PlayerID `json:"owner,omitempty"` // кто выбросил
	At       time.Duration   `json:"at"`              // игровое время спавна
}

// Store хранит оружие в мире. Общий для всех игроков сервера.
// id выдаются детерминированно (UUIDv5 от seed и порядкового номера),
// поэтому проигрывание реплея получает те же id.
type Store struct {
	mu    sync.RWMutex
	ns    uuid.UUID
	seq   uint64
	drops map[string]*Drop
	log   *logrus.Entry
}

func NewStore(seed int64) *Store {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(seed))
	return &Store{
		ns:    uuid.NewSHA1(uuid.NameSpaceOID, b[:]),
		drops: make(map[string]*Drop),
		log:   logger.WithComponent("world"),
	}
}

// Put кладет оружие в мир и возвращает созданный объект.
func (s *Store) Put(req inventory.DropRequest, owner domain.PlayerID, at time.Duration) *Drop {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], s.seq)

	d := &Drop{
		ID:       uuid.NewSHA1(s.ns, b[:]).String(),
		Weapon:   req.Weapon,
		Template: req.Template,
		Position: req.Position,
		Rotation: req.Rotation,
		Impulse:  req.Impulse,
		Owner:    owner,
		At:       at,
	}
	s.drops[d.ID] = d

	s.log.WithFields(logrus.Fields{
		"drop":   d.ID,
		"weapon": req.Weapon.String(),
		"owner":  owner,
	}).Debug("Weapon dropped into world")
	return d
}

// Take забирает объект из мира.
func (s *Store) Take(id string) (*Drop, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drops[id]
	if ok {
		delete(s.drops, id)
	}
	return d, ok
}

// Restore возвращает объект, взятый через Take (подбор не удался).
func (s *Store) Restore(d *Drop) {
	if d == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drops[d.ID] = d
}

func (s *Store) Get(id string) (*Drop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drops[id]
	return d, ok
}

// Near - объекты в радиусе r от точки, ближайшие первыми.
func (s *Store) Near(p domain.Vec3, r float64) []Drop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Drop
	for _, d := range s.drops {
		if Distance(d.Position, p) <= r {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := Distance(out[i].Position, p), Distance(out[j].Position, p)
		if di != dj {
			return di < dj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// List - все объекты в порядке появления.
func (s *Store) List() []Drop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Drop, 0, len(s.drops))
	for _, d := range s.drops {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At != out[j].At {
			return out[i].At < out[j].At
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drops)
}

// Distance - евклидово расстояние между точками.
func Distance(a, b domain.Vec3) float64 {
	return a.Add(b.Scale(-1)).Len()
}

// Spawner - inventory.DropSpawner одного игрока поверх общего Store.
type Spawner struct {
	Store *Store
	Owner domain.PlayerID
	Clock inventory.Clock
	// OnSpawn вызывается после появления объекта (метрики, лог игрока).
	OnSpawn func(*Drop)
}

func (sp *Spawner) Spawn(req inventory.DropRequest) {
	var at time.Duration
	if sp.Clock != nil {
		at = sp.Clock.Now()
	}
	d := sp.Store.Put(req, sp.Owner, at)
	if sp.OnSpawn != nil {
		sp.OnSpawn(d)
	}
}
