package storage

import (
	"context"

	"UpWatch/internal/checker/domain"
)

// MonitorStore reads monitor configuration. The checker never mutates it.
type MonitorStore interface {
	ListActive(ctx context.Context) ([]*domain.Monitor, error)
}

// ResultStore persists check results and serves the prior-state snapshot the
// engine takes before each run's results are written.
type ResultStore interface {
	AppendBatch(ctx context.Context, results []domain.CheckResult) error
	LastStates(ctx context.Context, monitorIDs []string) (map[string]bool, error)
}

// RunLock guards against overlapping scheduled invocations.
type RunLock interface {
	Acquire(ctx context.Context, owner string) (bool, error)
	Release(ctx context.Context, owner string) error
	Close() error
}
