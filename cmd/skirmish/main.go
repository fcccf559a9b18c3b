package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"tactics-server/internal/agent"
	"tactics-server/internal/content"
	"tactics-server/internal/engine"
	"tactics-server/pkg/logger"
)

// skirmish прогоняет бой без клиента: героем управляет агент,
// врагами - обычная политика движка. Лог боя печатается в stdout.
func main() {
	cfg := engine.NewConfig()

	var seed int64
	var maxTurns int
	var record bool
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "Scenario to play")
	flag.StringVar(&cfg.ContentPath, "content", "", "YAML content file (empty = embedded)")
	flag.IntVar(&maxTurns, "max-turns", 200, "Stop after this many turn passes")
	flag.BoolVar(&record, "record", false, "Save the agent's commands as a replay")
	flag.StringVar(&cfg.ReplayDir, "replay-dir", cfg.ReplayDir, "Where to save replays")
	flag.Parse()

	// Логи движка в stderr, чтобы stdout оставался чистым логом боя
	logger.InitWithOutput(os.Stderr)

	if seed != 0 {
		cfg.Seed = seed
	}
	cfg.RecordReplays = record

	var catalog *content.Catalog
	var err error
	if cfg.ContentPath == "" {
		catalog, err = content.Default()
	} else {
		catalog, err = content.Load(cfg.ContentPath)
	}
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load content")
	}

	svc, err := engine.NewService(cfg, catalog)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to start engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := agent.NewBot("skirmish", svc)
	res, err := bot.Run(ctx, maxTurns)

	for _, entry := range bot.Logs {
		fmt.Printf("[%s] %s\n", entry.Type, entry.Text)
	}
	fmt.Printf("scenario=%s seed=%d turn=%d outcome=%s\n", cfg.Scenario, cfg.Seed, res.Turn, res.Outcome)

	if err != nil {
		logger.Log.WithError(err).Fatal("Skirmish aborted")
	}
}
