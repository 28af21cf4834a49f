package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kirillkom/nerdvana-retrieval/internal/bootstrap"
	"github.com/kirillkom/nerdvana-retrieval/internal/config"
	"github.com/kirillkom/nerdvana-retrieval/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.NewJSONLogger("indexer", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, "indexer", logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	start := time.Now()
	if err := app.Index.EnsureIndex(ctx); err != nil {
		logger.Error("index_build_failed", "error", err)
		app.Close()
		os.Exit(1)
	}
	indexed, built := app.Index.Indexed()
	if !built {
		logger.Warn("index_skipped", "reason", "semantic retrieval disabled or no embedder configured")
		return
	}
	logger.Info("index_ready", "indexed", indexed, "duration_ms", time.Since(start).Milliseconds())
}
