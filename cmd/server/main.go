package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"tactics-server/internal/content"
	"tactics-server/internal/engine"
	"tactics-server/internal/infrastructure/storage"
	"tactics-server/internal/server"
	"tactics-server/internal/version"
	"tactics-server/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig()

	var seed int64
	var replayPath, port string
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .tcrp replay file to simulate")
	flag.StringVar(&cfg.ContentPath, "content", "", "YAML content file (empty = embedded)")
	flag.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "Scenario for new matches")
	flag.StringVar(&port, "port", envOr("TACTICS_PORT", "8080"), "HTTP port")
	flag.Parse()

	cfg.ReplayDir = envOr("TACTICS_REPLAY_DIR", cfg.ReplayDir)
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("Using explicit master seed: %d", seed)
	} else {
		logger.Log.Infof("Using random master seed: %d", cfg.Seed)
	}

	logger.Log.Info("Starting tactics server...")
	logger.Log.Info(version.String())

	catalog, err := loadCatalog(cfg.ContentPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load content")
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		cfg.RecordReplays = false
		if err := runReplay(cfg, catalog, replayPath); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	// 2. Инициализация ядра с конфигом
	gameService, err := engine.NewService(cfg, catalog)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to start engine")
	}

	// 3. Запуск сервера до SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	srv := server.New(gameService, port)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
	}

	logger.Log.Info("Shutting down...")
	// Закрываем матчи и сохраняем записи
	gameService.Shutdown()
	logger.Log.Info("Done.")
}

func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}

func runReplay(cfg engine.Config, catalog *content.Catalog, path string) error {
	logger.Log.WithField("file", path).Info("Mode: replay simulation")

	rs, err := storage.LoadFile(path)
	if err != nil {
		return err
	}

	gameService, err := engine.NewService(cfg, catalog)
	if err != nil {
		return err
	}

	outcome, inst, err := gameService.Playback(rs)
	if inst != nil {
		for _, entry := range inst.Logs {
			logger.Log.WithField("type", entry.Type).Info(entry.Text)
		}
	}
	if err != nil {
		return err
	}

	logger.Log.WithField("outcome", outcome).Info("Replay simulated")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
