package config

import "time"

// Config - корневая конфигурация сервера (armory.yaml).
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Log     LogConfig      `mapstructure:"log"`
	Game    GameConfig     `mapstructure:"game"`
	Loadout LoadoutConfig  `mapstructure:"loadout"`
	Catalog []WeaponConfig `mapstructure:"catalog" validate:"dive"`
	Replay  ReplayConfig   `mapstructure:"replay"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
	// ClientConstraint - какие версии протокола клиента принимаются (синтаксис go-version).
	ClientConstraint string `mapstructure:"clientConstraint" validate:"required"`
	// Admin разрешает GIVE и команды изменения групп/слотов.
	Admin bool `mapstructure:"admin"`
	Debug bool `mapstructure:"debug"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"maxAgeDays" validate:"gte=0"`
}

type GameConfig struct {
	TickRate       int  `mapstructure:"tickRate" validate:"min=1,max=240"`
	AllowIdentical bool `mapstructure:"allowIdentical"`
	Bots           int  `mapstructure:"bots" validate:"gte=0,lte=64"`
	// Seed - пространство имен id выброшенного оружия. 0 - случайный.
	Seed int64 `mapstructure:"seed"`
}

// TickDuration - длительность одного тика симуляции.
func (g GameConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(g.TickRate)
}

type LoadoutConfig struct {
	Groups []GroupConfig `mapstructure:"groups" validate:"min=1,dive"`
	// Starting - id оружия из каталога, которое игрок получает при входе.
	Starting []string `mapstructure:"starting"`
}

type GroupConfig struct {
	Name string   `mapstructure:"name" validate:"required"`
	Keys []string `mapstructure:"keys" validate:"min=1,dive,required"`
}

// WeaponConfig - запись каталога оружия.
type WeaponConfig struct {
	ID       string        `mapstructure:"id" validate:"required"`
	Name     string        `mapstructure:"name"`
	Group    string        `mapstructure:"group" validate:"required"`
	Template string        `mapstructure:"template"`
	Force    float64       `mapstructure:"force" validate:"gte=0"`
	Offset   float64       `mapstructure:"offset" validate:"gte=0"`
	PutAway  time.Duration `mapstructure:"putAway" validate:"gte=0"`
	TakeOut  time.Duration `mapstructure:"takeOut" validate:"gte=0"`
	Magazine int           `mapstructure:"magazine" validate:"gte=0"`
	Reserve  int           `mapstructure:"reserve" validate:"gte=0"`
}

type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir" validate:"required_if=Enabled true"`
	// Autosave - cron-выражение периодического сохранения. Пусто - только при остановке.
	Autosave string `mapstructure:"autosave"`
}
