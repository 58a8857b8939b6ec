package engine

import (
	"context"
	"fmt"
	"log/slog"

	"UpWatch/internal/checker/dispatcher"
	"UpWatch/internal/checker/domain"
	"UpWatch/internal/checker/escalation"
	"UpWatch/internal/checker/location"
	"UpWatch/internal/storage"
	"UpWatch/pkg/besteffort"
	"UpWatch/pkg/uuidutil"
)

// Engine runs one stateless monitoring pass: load active monitors, resolve
// the probe location, fan out all checks, then persist results and escalate
// state changes as two independent best-effort side effects.
type Engine struct {
	monitors   storage.MonitorStore
	results    storage.ResultStore
	lock       storage.RunLock // nil when redis is not configured
	dispatcher *dispatcher.Dispatcher
	location   *location.Resolver
	escalation *escalation.Dispatcher
	logger     *slog.Logger
}

func New(
	monitors storage.MonitorStore,
	results storage.ResultStore,
	lock storage.RunLock,
	disp *dispatcher.Dispatcher,
	loc *location.Resolver,
	esc *escalation.Dispatcher,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		monitors:   monitors,
		results:    results,
		lock:       lock,
		dispatcher: disp,
		location:   loc,
		escalation: esc,
		logger:     logger,
	}
}

// Run returns an error only for a configuration-read failure, which aborts
// before any check or side effect. Everything downstream is best-effort.
func (e *Engine) Run(ctx context.Context) error {
	runID := uuidutil.New()
	log := e.logger.With("run_id", runID)

	if e.lock != nil {
		acquired, err := e.lock.Acquire(ctx, runID)
		if err != nil {
			log.Warn("run lock unavailable, continuing without it", "error", err)
		} else if !acquired {
			log.Info("another run holds the lock, skipping")
			return nil
		} else {
			defer besteffort.Do(log, "release run lock", func() error {
				return e.lock.Release(ctx, runID)
			})
		}
	}

	monitors, err := e.monitors.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("load active monitors: %w", err)
	}
	if len(monitors) == 0 {
		log.Info("no active monitors, nothing to do")
		return nil
	}

	loc := e.location.Resolve(ctx)
	log.Info("starting checks",
		"monitors", len(monitors),
		"location", loc,
	)

	results := e.dispatcher.Run(ctx, monitors)
	for i := range results {
		results[i].Location = loc
	}

	// The prior-state snapshot is taken before the batch write, so this
	// run's own rows can never mask a recovery.
	prior := e.priorStates(ctx, monitors, log)

	// Persistence and escalation consume the same result set independently:
	// a failed write never blocks incident dispatch.
	besteffort.Do(log, "persist check results", func() error {
		return e.results.AppendBatch(ctx, results)
	})

	e.escalation.Dispatch(ctx, monitors, results, prior)

	up := 0
	for _, r := range results {
		if r.IsUp {
			up++
		}
	}
	log.Info("run completed",
		"checked", len(results),
		"up", up,
		"down", len(results)-up,
	)
	return nil
}

// priorStates snapshots the last persisted up/down state per monitor. On a
// lookup failure a recovery cannot be confirmed, so resolve events are
// suppressed for this run while triggers still go out.
func (e *Engine) priorStates(ctx context.Context, monitors []*domain.Monitor, log *slog.Logger) map[string]bool {
	ids := make([]string, 0, len(monitors))
	for _, m := range monitors {
		ids = append(ids, m.ID)
	}

	prior, err := e.results.LastStates(ctx, ids)
	if err != nil {
		log.Warn("prior state lookup failed, resolve events suppressed", "error", err)
		return nil
	}
	return prior
}
