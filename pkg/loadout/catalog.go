package loadout

import (
	"sort"

	"armory-server/internal/config"
	"armory-server/internal/domain"
	"armory-server/internal/presentation"
)

// Template - запись каталога: описание оружия и параметры его модели.
type Template struct {
	Weapon *domain.Weapon
	View   presentation.ViewSpec
}

// Catalog - все оружие, известное серверу. Указатели на domain.Weapon общие
// для всех игроков: одно и то же оружие в мире и в инвентаре - один объект.
type Catalog struct {
	templates map[domain.WeaponID]Template
}

// NewCatalog строит каталог из секции catalog конфигурации.
func NewCatalog(entries []config.WeaponConfig) *Catalog {
	c := &Catalog{templates: make(map[domain.WeaponID]Template, len(entries))}
	for _, e := range entries {
		id := domain.WeaponID(e.ID)
		c.templates[id] = Template{
			Weapon: &domain.Weapon{
				ID:    id,
				Name:  e.Name,
				Group: e.Group,
				Drop: domain.DropParams{
					Template: e.Template,
					Force:    e.Force,
					Offset:   e.Offset,
				},
			},
			View: presentation.ViewSpec{
				Weapon:   id,
				PutAway:  e.PutAway,
				TakeOut:  e.TakeOut,
				Magazine: e.Magazine,
				Reserve:  e.Reserve,
			},
		}
	}
	return c
}

// Weapon ищет оружие по id.
func (c *Catalog) Weapon(id domain.WeaponID) (*domain.Weapon, bool) {
	t, ok := c.templates[id]
	if !ok {
		return nil, false
	}
	return t.Weapon, true
}

// Templates - все записи, отсортированные по id.
func (c *Catalog) Templates() []Template {
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weapon.ID < out[j].Weapon.ID })
	return out
}

func (c *Catalog) Len() int { return len(c.templates) }
