package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"UpWatch/internal/checker/domain"
	runner "UpWatch/internal/checker/runners"
)

const DefaultMaxConcurrency = 50

// Dispatcher fans out one check per monitor. The aggregate wait is "all
// checks settled": strategies never propagate failures, so completion is
// gated only by the slowest check's own timeout.
type Dispatcher struct {
	factory        *runner.Factory
	logger         *slog.Logger
	maxConcurrency int
}

func NewDispatcher(factory *runner.Factory, maxConcurrency int, logger *slog.Logger) *Dispatcher {
	if maxConcurrency < 1 {
		maxConcurrency = DefaultMaxConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		factory:        factory,
		logger:         logger,
		maxConcurrency: maxConcurrency,
	}
}

// Run executes all checks concurrently under a bounded semaphore and returns
// exactly one result per monitor. No ordering guarantee exists beyond the
// monitor_id on each result.
func (d *Dispatcher) Run(ctx context.Context, monitors []*domain.Monitor) []domain.CheckResult {
	results := make([]domain.CheckResult, len(monitors))

	sem := make(chan struct{}, d.maxConcurrency)
	var wg sync.WaitGroup

	for i, m := range monitors {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, m *domain.Monitor) {
			defer func() { <-sem }()
			defer wg.Done()
			results[i] = d.checkOne(ctx, m)
		}(i, m)
	}

	wg.Wait()
	return results
}

func (d *Dispatcher) checkOne(ctx context.Context, monitor *domain.Monitor) (result domain.CheckResult) {
	// A strategy must settle with a result. Hold that invariant even if one
	// panics, so the rest of the batch still completes.
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("check panicked",
				"monitor_id", monitor.ID,
				"url", monitor.URL,
				"panic", rec,
			)
			result = domain.NewDownResult(monitor.ID, 0, 0, fmt.Sprintf("check panicked: %v", rec))
		}
	}()

	result = d.factory.GetRunner(monitor.Method).Execute(ctx, monitor)

	d.logger.Debug("check finished",
		"monitor_id", monitor.ID,
		"url", monitor.URL,
		"method", monitor.HTTPMethod(),
		"up", result.IsUp,
		"status", result.StatusCode,
		"latency_ms", result.LatencyMS,
		"error", result.Error,
	)
	return result
}
