package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"armory-server/internal/agent"
	"armory-server/internal/config"
	"armory-server/internal/engine"
	"armory-server/internal/infrastructure/storage"
	"armory-server/internal/metrics"
	"armory-server/internal/network"
	"armory-server/internal/server"
	"armory-server/internal/version"
	"armory-server/pkg/loadout"
	"armory-server/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Флаги
	var (
		configPath string
		replayPath string
		bots       int
		settle     int
	)
	pflag.StringVarP(&configPath, "config", "c", "", "Path to armory.yaml (defaults + ARMORY_* env if empty)")
	pflag.StringVar(&replayPath, "replay", "", "Path to .wirp replay file to simulate")
	pflag.IntVar(&bots, "bots", -1, "Number of bot players (overrides game.bots)")
	pflag.IntVar(&settle, "settle", 300, "Extra ticks to simulate after the last replayed action")
	pflag.Parse()

	// 2. Конфигурация и логгер
	watcher, err := config.Watch(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	cfg := watcher.Config()
	logger.Setup(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	watcher.OnChange(func(c *config.Config) {
		logger.SetLevel(c.Log.Level)
		logger.Log.WithField("level", c.Log.Level).Info("Log level applied")
	})

	logger.Log.Info("Starting Armory...")
	logger.Log.Info(version.Current().String())

	factory, err := loadout.NewFactory(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build loadout")
	}
	collector := metrics.New()

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")
		if err := runReplay(cfg, factory, collector, replayPath, settle); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Ядро
	ecfg := engine.NewConfig(cfg)
	logger.Log.Infof("🎲 World seed: %d", ecfg.Seed)
	gameService := engine.NewService(ecfg, factory, network.NewBroadcaster(), collector)
	go gameService.Run(ctx)

	// 4. Автосохранение реплея
	var replays *storage.ReplayService
	var scheduler *cron.Cron
	if cfg.Replay.Enabled {
		replays, err = storage.NewReplayService(cfg.Replay.Dir)
		if err != nil {
			logger.Log.WithError(err).Fatal("Replay storage unavailable")
		}
		if cfg.Replay.Autosave != "" {
			scheduler = cron.New()
			if _, err := scheduler.AddFunc(cfg.Replay.Autosave, func() { saveReplay(replays, gameService) }); err != nil {
				logger.Log.WithError(err).Fatal("Bad replay.autosave schedule")
			}
			scheduler.Start()
		}
	}

	// 5. Боты
	n := cfg.Game.Bots
	if bots >= 0 {
		n = bots
	}
	for i := 0; i < n; i++ {
		go agent.NewBot(i, gameService).Run(ctx)
	}

	// 6. Сервер (блокирует до сигнала)
	srv := server.New(gameService, server.Options{
		Port:             cfg.Server.Port,
		ClientConstraint: cfg.Server.ClientConstraint,
		Debug:            cfg.Server.Debug,
		Metrics:          collector.Handler(),
	})
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
		stop()
	}

	logger.Log.Info("Shutting down...")
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	gameService.Hub.Close()
	if replays != nil {
		saveReplay(replays, gameService)
	}
	logger.Log.Info("Done.")
}

func saveReplay(replays *storage.ReplayService, svc *engine.GameService) {
	if _, err := replays.Save(svc.ReplaySnapshot()); err != nil {
		logger.Log.WithError(err).Error("Failed to save replay")
	}
}

// runReplay проигрывает файл без сети и выводит итоговое состояние игроков.
func runReplay(cfg *config.Config, factory *loadout.Factory, m *metrics.Collector, path string, settle int) error {
	rs, err := storage.LoadFile(path)
	if err != nil {
		return err
	}

	ecfg := engine.NewConfig(cfg)
	ecfg.Seed = rs.Seed
	if rs.TickRate > 0 {
		ecfg.TickDuration = time.Second / time.Duration(rs.TickRate)
	}
	ecfg.Record = false
	// Админские команды попали в запись только если были разрешены
	ecfg.Admin = true

	svc := engine.NewService(ecfg, factory, nil, m)
	if err := svc.Playback(rs, settle); err != nil {
		return err
	}

	for _, p := range svc.Players() {
		logger.Log.WithFields(logrus.Fields{
			"player":  p.ID,
			"state":   p.State,
			"active":  p.Active,
			"weapons": p.Weapons,
		}).Info("Final state")
	}
	logger.Log.WithField("drops", len(svc.DropsDump())).Info("Replay simulation complete")
	return nil
}
