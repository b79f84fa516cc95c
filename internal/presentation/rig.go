package presentation

import (
	"armory-server/internal/domain"
	"armory-server/internal/inventory"
	"armory-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Node - дочерний объект контейнера. Оружием считаются только узлы с тегом domain.WeaponTag.
type Node struct {
	Name string
	Tag  string
	View *View
}

// Rig - контейнер "руки игрока": все модели, которые может показать клиент.
// Индекс представлений строится одним проходом Scan при создании инвентаря.
type Rig struct {
	owner    domain.PlayerID
	children []Node
}

func NewRig(owner domain.PlayerID) *Rig {
	return &Rig{owner: owner}
}

// Attach добавляет дочерний узел.
func (r *Rig) Attach(n Node) {
	r.children = append(r.children, n)
}

// AttachWeapon - Attach для модели оружия с правильным тегом.
func (r *Rig) AttachWeapon(v *View) {
	r.Attach(Node{Name: string(v.Weapon()), Tag: domain.WeaponTag, View: v})
}

// Scan строит индекс WeaponID -> представление. Узлы без тега или без View
// пропускаются; при повторе id выигрывает первый узел.
func (r *Rig) Scan() map[domain.WeaponID]inventory.PresentationHandle {
	log := logger.WithComponent("presentation").WithField("player", r.owner)
	out := make(map[domain.WeaponID]inventory.PresentationHandle)
	for _, n := range r.children {
		if n.Tag != domain.WeaponTag || n.View == nil {
			continue
		}
		id := n.View.Weapon()
		if _, dup := out[id]; dup {
			log.WithFields(logrus.Fields{"node": n.Name, "weapon": id}).Warn("Duplicate weapon node ignored")
			continue
		}
		out[id] = n.View
	}
	log.WithField("weapons", len(out)).Debug("Rig scanned")
	return out
}

// View возвращает модель по id оружия.
func (r *Rig) View(id domain.WeaponID) (*View, bool) {
	for _, n := range r.children {
		if n.Tag == domain.WeaponTag && n.View != nil && n.View.Weapon() == id {
			return n.View, true
		}
	}
	return nil, false
}

// Visible - id видимых сейчас моделей (в норме не больше одной).
func (r *Rig) Visible() []domain.WeaponID {
	var out []domain.WeaponID
	for _, n := range r.children {
		if n.View != nil && n.View.Visible() {
			out = append(out, n.View.Weapon())
		}
	}
	return out
}
