package engine

import (
	"time"

	"armory-server/internal/config"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно мира. От него зависят id выброшенного оружия,
	// поэтому реплей проигрывается с тем же Seed.
	Seed         int64
	TickDuration time.Duration
	// Admin разрешает админские команды (GIVE, ADD_GROUP...).
	Admin bool
	// Record - писать ли команды в реплей.
	Record bool
}

// NewConfig собирает конфиг движка из конфигурации сервера.
// Seed == 0 в файле означает случайный сид.
func NewConfig(cfg *config.Config) Config {
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Config{
		Seed:         seed,
		TickDuration: cfg.Game.TickDuration(),
		Admin:        cfg.Server.Admin,
		Record:       cfg.Replay.Enabled,
	}
}
