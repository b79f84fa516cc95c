package inventory

import (
	"armory-server/internal/domain"

	"github.com/cockroachdb/errors"
)

// Slot - ячейка группы, закрепленная за клавишей. Occupant == nil - ячейка пуста.
type Slot struct {
	Key      domain.SlotKey `json:"key"`
	Occupant *domain.Weapon `json:"occupant,omitempty"`
}

// Group - именованный набор слотов (Primary, Secondary...).
// Порядок групп в реестре = порядок прокрутки колесом.
type Group struct {
	Name  string `json:"name"`
	Slots []Slot `json:"slots"`
}

// GroupSpec - описание группы для конструктора реестра.
type GroupSpec struct {
	Name string
	Keys []domain.SlotKey
}

// Location - положение слота в реестре. Индексы действительны только до
// следующего структурного изменения, поэтому снаружи храним ключ, а не Location.
type Location struct {
	Group int
	Slot  int
}

// Registry хранит группы и производный индекс ключ -> слот.
// Индекс всегда перестраивается целиком при изменении структуры,
// а смена владельца слота его не затрагивает.
type Registry struct {
	groups         []*Group
	allowIdentical bool

	keyIndex   map[domain.SlotKey]Location
	groupIndex map[string]int
}

var (
	ErrDuplicateGroup = errors.New("duplicate group name")
	ErrDuplicateKey   = errors.New("duplicate slot key")
	ErrEmptyName      = errors.New("group name is empty")
	ErrEmptyKey       = errors.New("slot key is empty")
)

// NewRegistry строит реестр из описаний групп. Ключи слотов должны быть
// уникальны во всем реестре, так как это биндинги ввода.
func NewRegistry(specs []GroupSpec, allowIdentical bool) (*Registry, error) {
	r := &Registry{allowIdentical: allowIdentical}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, ErrEmptyName
		}
		for _, g := range r.groups {
			if g.Name == spec.Name {
				return nil, errors.Wrapf(ErrDuplicateGroup, "group %q", spec.Name)
			}
		}
		g := &Group{Name: spec.Name, Slots: make([]Slot, 0, len(spec.Keys))}
		for _, key := range spec.Keys {
			if key == "" {
				return nil, errors.Wrapf(ErrEmptyKey, "group %q", spec.Name)
			}
			g.Slots = append(g.Slots, Slot{Key: key})
		}
		r.groups = append(r.groups, g)
	}
	if err := r.rebuild(); err != nil {
		return nil, err
	}
	return r, nil
}

// rebuild пересчитывает оба индекса по текущему списку групп.
func (r *Registry) rebuild() error {
	keys := make(map[domain.SlotKey]Location)
	names := make(map[string]int, len(r.groups))
	for gi, g := range r.groups {
		names[g.Name] = gi
		for si, s := range g.Slots {
			if _, dup := keys[s.Key]; dup {
				return errors.Wrapf(ErrDuplicateKey, "key %q", s.Key)
			}
			keys[s.Key] = Location{Group: gi, Slot: si}
		}
	}
	r.keyIndex = keys
	r.groupIndex = names
	return nil
}

func (r *Registry) AllowIdentical() bool { return r.allowIdentical }

// AddWeapon кладет оружие в первый пустой слот его группы.
// Если свободных нет - перезаписывается последний слот группы.
func (r *Registry) AddWeapon(w *domain.Weapon) bool {
	_, _, ok := r.place(w)
	return ok
}

// place - AddWeapon, который дополнительно сообщает, куда легло оружие
// и кого оно вытеснило.
func (r *Registry) place(w *domain.Weapon) (Location, *domain.Weapon, bool) {
	if w == nil {
		return Location{}, nil, false
	}
	gi, ok := r.groupIndex[w.Group]
	if !ok {
		return Location{}, nil, false
	}
	if !r.allowIdentical && r.contains(w) {
		return Location{}, nil, false
	}
	g := r.groups[gi]
	if len(g.Slots) == 0 {
		return Location{}, nil, false
	}
	for si := range g.Slots {
		if g.Slots[si].Occupant == nil {
			g.Slots[si].Occupant = w
			return Location{Group: gi, Slot: si}, nil, true
		}
	}
	last := len(g.Slots) - 1
	evicted := g.Slots[last].Occupant
	g.Slots[last].Occupant = w
	return Location{Group: gi, Slot: last}, evicted, true
}

// RemoveWeapon освобождает слот, занятый оружием в его группе.
func (r *Registry) RemoveWeapon(w *domain.Weapon) bool {
	loc, ok := r.FindSlotFor(w)
	if !ok {
		return false
	}
	r.groups[loc.Group].Slots[loc.Slot].Occupant = nil
	return true
}

// IsGroupFull - все слоты группы заняты. Неизвестная группа считается полной.
func (r *Registry) IsGroupFull(name string) bool {
	gi, ok := r.groupIndex[name]
	if !ok {
		return true
	}
	for _, s := range r.groups[gi].Slots {
		if s.Occupant == nil {
			return false
		}
	}
	return true
}

// FindSlotFor ищет оружие в слотах его группы.
func (r *Registry) FindSlotFor(w *domain.Weapon) (Location, bool) {
	if w == nil {
		return Location{}, false
	}
	gi, ok := r.groupIndex[w.Group]
	if !ok {
		return Location{}, false
	}
	for si, s := range r.groups[gi].Slots {
		if s.Occupant.Same(w) {
			return Location{Group: gi, Slot: si}, true
		}
	}
	return Location{}, false
}

// Lookup возвращает владельца слота по клавише. ok == false - клавиша неизвестна.
func (r *Registry) Lookup(key domain.SlotKey) (*domain.Weapon, Location, bool) {
	loc, ok := r.keyIndex[key]
	if !ok {
		return nil, Location{}, false
	}
	return r.groups[loc.Group].Slots[loc.Slot].Occupant, loc, true
}

// KeyAt возвращает клавишу слота по его положению.
func (r *Registry) KeyAt(loc Location) (domain.SlotKey, bool) {
	if loc.Group < 0 || loc.Group >= len(r.groups) {
		return "", false
	}
	g := r.groups[loc.Group]
	if loc.Slot < 0 || loc.Slot >= len(g.Slots) {
		return "", false
	}
	return g.Slots[loc.Slot].Key, true
}

// HasGroup - известна ли группа.
func (r *Registry) HasGroup(name string) bool {
	_, ok := r.groupIndex[name]
	return ok
}

// GroupOf возвращает имя группы, которой принадлежит клавиша.
func (r *Registry) GroupOf(key domain.SlotKey) (string, bool) {
	loc, ok := r.keyIndex[key]
	if !ok {
		return "", false
	}
	return r.groups[loc.Group].Name, true
}

// AddGroup добавляет группу в конец порядка прокрутки.
func (r *Registry) AddGroup(name string, keys []domain.SlotKey) bool {
	if name == "" || r.HasGroup(name) {
		return false
	}
	seen := make(map[domain.SlotKey]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			return false
		}
		if _, taken := r.keyIndex[k]; taken {
			return false
		}
		seen[k] = true
	}
	g := &Group{Name: name, Slots: make([]Slot, 0, len(keys))}
	for _, k := range keys {
		g.Slots = append(g.Slots, Slot{Key: k})
	}
	r.groups = append(r.groups, g)
	return r.rebuild() == nil
}

// RemoveGroup удаляет группу вместе с содержимым слотов.
func (r *Registry) RemoveGroup(name string) bool {
	gi, ok := r.groupIndex[name]
	if !ok {
		return false
	}
	r.groups = append(r.groups[:gi], r.groups[gi+1:]...)
	return r.rebuild() == nil
}

// AddSlot добавляет пустой слот в конец группы.
func (r *Registry) AddSlot(group string, key domain.SlotKey) bool {
	gi, ok := r.groupIndex[group]
	if !ok || key == "" {
		return false
	}
	if _, taken := r.keyIndex[key]; taken {
		return false
	}
	g := r.groups[gi]
	g.Slots = append(g.Slots, Slot{Key: key})
	return r.rebuild() == nil
}

// RemoveSlot удаляет слот (вместе с оружием в нем).
func (r *Registry) RemoveSlot(group string, key domain.SlotKey) bool {
	loc, ok := r.keyIndex[key]
	if !ok || r.groups[loc.Group].Name != group {
		return false
	}
	g := r.groups[loc.Group]
	g.Slots = append(g.Slots[:loc.Slot], g.Slots[loc.Slot+1:]...)
	return r.rebuild() == nil
}

// Groups возвращает копию групп (для HUD и отладки).
func (r *Registry) Groups() []Group {
	out := make([]Group, 0, len(r.groups))
	for _, g := range r.groups {
		slots := make([]Slot, len(g.Slots))
		copy(slots, g.Slots)
		out = append(out, Group{Name: g.Name, Slots: slots})
	}
	return out
}

// Weapons возвращает все оружие в порядке прокрутки.
func (r *Registry) Weapons() []*domain.Weapon {
	var out []*domain.Weapon
	for _, g := range r.groups {
		for _, s := range g.Slots {
			if s.Occupant != nil {
				out = append(out, s.Occupant)
			}
		}
	}
	return out
}

// order - все слоты всех групп в порядке прокрутки.
func (r *Registry) order() []Slot {
	var out []Slot
	for _, g := range r.groups {
		out = append(out, g.Slots...)
	}
	return out
}

func (r *Registry) contains(w *domain.Weapon) bool {
	for _, g := range r.groups {
		for _, s := range g.Slots {
			if s.Occupant.Same(w) {
				return true
			}
		}
	}
	return false
}

// countOf - сколько раз оружие встречается во всех группах.
func (r *Registry) countOf(w *domain.Weapon) int {
	n := 0
	for _, g := range r.groups {
		for _, s := range g.Slots {
			if s.Occupant.Same(w) {
				n++
			}
		}
	}
	return n
}

func (r *Registry) occupantAt(loc Location) *domain.Weapon {
	return r.groups[loc.Group].Slots[loc.Slot].Occupant
}

func (r *Registry) setOccupant(loc Location, w *domain.Weapon) {
	r.groups[loc.Group].Slots[loc.Slot].Occupant = w
}
