package config

import (
	"sync"

	"armory-server/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher перечитывает файл конфигурации при изменении и раздает
// новую версию подписчикам. Невалидный файл игнорируется, остается прежняя версия.
type Watcher struct {
	loader *Loader

	mu        sync.RWMutex
	current   *Config
	callbacks []func(*Config)
}

// Watch загружает конфигурацию и начинает следить за файлом.
func Watch(path string) (*Watcher, error) {
	l := NewLoader(path)
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}
	w := &Watcher{loader: l, current: cfg}
	if path != "" {
		l.viper.OnConfigChange(w.reload)
		l.viper.WatchConfig()
	}
	return w, nil
}

// Config - текущая версия конфигурации.
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnChange регистрирует обработчик новой версии.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

func (w *Watcher) reload(e fsnotify.Event) {
	log := logger.WithComponent("config").WithFields(logrus.Fields{
		"file": e.Name,
		"op":   e.Op.String(),
	})

	cfg, err := w.loader.Load()
	if err != nil {
		log.WithError(err).Warn("Config reload rejected")
		return
	}

	w.mu.Lock()
	w.current = cfg
	callbacks := make([]func(*Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	log.Info("Config reloaded")
	for _, fn := range callbacks {
		fn(cfg)
	}
}
