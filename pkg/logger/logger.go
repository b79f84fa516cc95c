package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Options - настройки логгера (секция log конфига).
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text | json
	// File - если задан, логи дополнительно пишутся в файл с ротацией.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init инициализирует глобальный логгер из переменных окружения.
// LOG_LEVEL и LOG_FORMAT, как и раньше.
func Init() {
	Setup(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// Setup настраивает глобальный логгер. Можно вызывать повторно (hot reload).
func Setup(opts Options) {
	if Log == nil {
		Log = logrus.New()
	}

	SetLevel(opts.Level)

	// "json" - для продакшена и сбора логов, "text" - для разработки.
	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   opts.File == "",
		})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	}
	Log.SetOutput(out)
}

// SetLevel меняет уровень логирования. Неизвестный уровень -> info.
func SetLevel(level string) {
	if Log == nil {
		Log = logrus.New()
	}
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

// WithComponent возвращает запись с полем component.
// Работает и до Init (например, в тестах) - тогда пишет в стандартный логгер logrus.
func WithComponent(name string) *logrus.Entry {
	base := Log
	if base == nil {
		base = logrus.StandardLogger()
	}
	return base.WithField("component", name)
}
