package domain

import "math"

// WeaponID - стабильный идентификатор оружия (ключ каталога).
type WeaponID string

// SlotKey - идентификатор биндинга ввода, за которым закреплен слот ("F1", "1", "mouse4").
type SlotKey string

// PlayerID - идентификатор игрока (сессии).
type PlayerID string

func (id PlayerID) String() string { return string(id) }

// Vec3 - простой вектор для позиций, поворотов и импульсов.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalized возвращает единичный вектор. Нулевой вектор остается нулевым.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Pose - положение владельца инвентаря в мире (нужно для выброса оружия).
type Pose struct {
	Position Vec3 `json:"position"`
	Forward  Vec3 `json:"forward"`
	Rotation Vec3 `json:"rotation"` // эйлеровы углы, градусы
}

// DropParams описывает, как оружие появляется в мире при выбросе.
type DropParams struct {
	Template string  `json:"template"` // шаблон объекта в мире
	Force    float64 `json:"force"`    // сила импульса вдоль взгляда
	Offset   float64 `json:"offset"`   // смещение точки спавна вдоль взгляда
}

// Weapon - неизменяемое описание оружия (WeaponIdentity).
// Два значения равны, если совпадает ID.
type Weapon struct {
	ID    WeaponID   `json:"id"`
	Name  string     `json:"name"`
	Group string     `json:"group"`
	Drop  DropParams `json:"drop"`
}

// Same сравнивает оружие по идентификатору. nil равен только nil.
func (w *Weapon) Same(o *Weapon) bool {
	if w == nil || o == nil {
		return w == o
	}
	return w.ID == o.ID
}

func (w *Weapon) String() string {
	if w == nil {
		return "<none>"
	}
	return string(w.ID)
}
