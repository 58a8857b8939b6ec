package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"UpWatch/internal/config"
)

func NewPostgres(ctx context.Context, cfg *config.DatabaseConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		log.Error("Failed to open connection to postgres")
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		log.Error("Failed to ping database")
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	log.Info("Successfully connected to postgres database")
	return pool, nil
}
