package loadout

import (
	"armory-server/internal/config"
	"armory-server/internal/domain"
	"armory-server/internal/inventory"
	"armory-server/internal/presentation"
	"armory-server/pkg/logger"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Factory собирает инвентарь нового игрока: реестр из раскладки,
// стартовое оружие и руки со всеми моделями каталога.
type Factory struct {
	catalog        *Catalog
	groups         []inventory.GroupSpec
	starting       []domain.WeaponID
	allowIdentical bool
}

func NewFactory(cfg *config.Config) (*Factory, error) {
	if cfg == nil {
		return nil, config.ErrNilConfig
	}
	f := &Factory{
		catalog:        NewCatalog(cfg.Catalog),
		allowIdentical: cfg.Game.AllowIdentical,
	}
	for _, g := range cfg.Loadout.Groups {
		spec := inventory.GroupSpec{Name: g.Name}
		for _, k := range g.Keys {
			spec.Keys = append(spec.Keys, domain.SlotKey(k))
		}
		f.groups = append(f.groups, spec)
	}
	for _, id := range cfg.Loadout.Starting {
		if _, ok := f.catalog.Weapon(domain.WeaponID(id)); !ok {
			return nil, errors.Newf("starting weapon %q not in catalog", id)
		}
		f.starting = append(f.starting, domain.WeaponID(id))
	}
	return f, nil
}

func (f *Factory) Catalog() *Catalog { return f.catalog }

// Deps - зависимости инвентаря, которые знает только движок.
type Deps struct {
	Clock    inventory.Clock
	Spawner  inventory.DropSpawner
	Display  inventory.Display
	Pose     inventory.PoseSource
	Observer inventory.Observer
}

// Kit - собранный инвентарь игрока.
type Kit struct {
	Manager *inventory.Manager
	Rig     *presentation.Rig
}

// Build создает инвентарь игрока.
func (f *Factory) Build(player domain.PlayerID, deps Deps) (*Kit, error) {
	reg, err := inventory.NewRegistry(f.groups, f.allowIdentical)
	if err != nil {
		return nil, errors.Wrap(err, "build registry")
	}

	rig := presentation.NewRig(player)
	for _, t := range f.catalog.Templates() {
		rig.AttachWeapon(presentation.NewView(t.View))
	}

	log := logger.WithComponent("inventory").WithField("player", player)
	for _, id := range f.starting {
		w, _ := f.catalog.Weapon(id)
		if !reg.AddWeapon(w) {
			log.WithField("weapon", id).Warn("Starting weapon rejected by registry")
		}
	}

	m, err := inventory.NewManager(inventory.Options{
		Registry: reg,
		Handles:  rig.Scan(),
		Spawner:  deps.Spawner,
		Display:  deps.Display,
		Clock:    deps.Clock,
		Pose:     deps.Pose,
		Observer: deps.Observer,
		Log:      log,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build inventory manager")
	}

	log.WithFields(logrus.Fields{
		"groups":  len(f.groups),
		"weapons": len(reg.Weapons()),
	}).Info("Inventory created")
	return &Kit{Manager: m, Rig: rig}, nil
}
