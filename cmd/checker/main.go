package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"UpWatch/internal/checker/dependencies"
	"UpWatch/internal/config"
	"UpWatch/pkg/logger"
)

// The checker is a single stateless pass: an external scheduler (cron,
// systemd timer) invokes it, it evaluates every active monitor once, then
// exits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %s", err)
	}

	logg := logger.Setup(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	logg.Info("Starting UpWatch checker",
		slog.String("name", cfg.App.Name),
		slog.String("version", cfg.App.Version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := dependencies.NewContainer(ctx, cfg, logg)
	if err != nil {
		logg.Error("Failed to create dependency container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	if err := container.Engine.Run(ctx); err != nil {
		logg.Error("Run aborted", "error", err)
		container.Close()
		os.Exit(1)
	}
}
