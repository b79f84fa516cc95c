package config

import (
	"armory-server/internal/domain"

	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.clientConstraint", ">= 1.0, < 2.0")
	v.SetDefault("server.admin", false)
	v.SetDefault("server.debug", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMb", 100)
	v.SetDefault("log.maxBackups", 3)
	v.SetDefault("log.maxAgeDays", 7)

	v.SetDefault("game.tickRate", domain.DefaultTickRate)
	v.SetDefault("game.allowIdentical", false)
	v.SetDefault("game.bots", 0)
	v.SetDefault("game.seed", 0)

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.dir", "replays")
	v.SetDefault("replay.autosave", "@every 5m")
}

// DefaultLoadout - раскладка, если в файле нет секции loadout.
func DefaultLoadout() LoadoutConfig {
	return LoadoutConfig{
		Groups: []GroupConfig{
			{Name: domain.GroupPrimary, Keys: []string{"1", "2"}},
			{Name: domain.GroupSecondary, Keys: []string{"F1", "F2"}},
			{Name: domain.GroupMelee, Keys: []string{"3"}},
		},
		Starting: []string{"pistol", "knife"},
	}
}

// DefaultCatalog - каталог, если в файле нет секции catalog.
func DefaultCatalog() []WeaponConfig {
	return []WeaponConfig{
		{ID: "pistol", Name: "Pistol", Group: domain.GroupSecondary, Template: "pistol_pickup",
			Force: 3, Offset: domain.DefaultDropDist, Magazine: 12, Reserve: 48},
		{ID: "revolver", Name: "Revolver", Group: domain.GroupSecondary, Template: "revolver_pickup",
			Force: 3, Offset: domain.DefaultDropDist, Magazine: 6, Reserve: 24},
		{ID: "rifle", Name: "Assault Rifle", Group: domain.GroupPrimary, Template: "rifle_pickup",
			Force: 5, Offset: 1.5, Magazine: 30, Reserve: 90},
		{ID: "shotgun", Name: "Shotgun", Group: domain.GroupPrimary, Template: "shotgun_pickup",
			Force: 5, Offset: 1.5, Magazine: 8, Reserve: 32},
		{ID: "sniper", Name: "Sniper Rifle", Group: domain.GroupPrimary, Template: "sniper_pickup",
			Force: 5, Offset: 1.5, Magazine: 5, Reserve: 20},
		{ID: "knife", Name: "Knife", Group: domain.GroupMelee, Template: "knife_pickup",
			Force: 2, Offset: 0.5},
	}
}
