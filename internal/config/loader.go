package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix - префикс переменных окружения (ARMORY_GAME_TICKRATE=60).
const EnvPrefix = "ARMORY"

// Loader читает конфигурацию из YAML и окружения.
type Loader struct {
	viper *viper.Viper
	path  string
}

// NewLoader создает загрузчик. Пустой path - только значения по умолчанию и окружение.
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}
	return &Loader{viper: v, path: path}
}

// Load читает, дополняет и проверяет конфигурацию.
func (l *Loader) Load() (*Config, error) {
	if l.path != "" {
		if err := l.viper.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", l.path)
		}
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	applyFallbacks(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load - сокращение для NewLoader(path).Load().
func Load(path string) (*Config, error) {
	return NewLoader(path).Load()
}

// applyFallbacks подставляет встроенные раскладку и каталог и длительности по умолчанию.
func applyFallbacks(cfg *Config) {
	if len(cfg.Loadout.Groups) == 0 {
		def := DefaultLoadout()
		cfg.Loadout.Groups = def.Groups
		if cfg.Loadout.Starting == nil {
			cfg.Loadout.Starting = def.Starting
		}
	}
	if len(cfg.Catalog) == 0 {
		cfg.Catalog = DefaultCatalog()
	}
	for i := range cfg.Catalog {
		w := &cfg.Catalog[i]
		if w.Name == "" {
			w.Name = w.ID
		}
		if w.Template == "" {
			w.Template = w.ID + "_pickup"
		}
		if w.PutAway == 0 {
			w.PutAway = defaultPutAway
		}
		if w.TakeOut == 0 {
			w.TakeOut = defaultTakeOut
		}
	}
}
