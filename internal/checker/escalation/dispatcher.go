package escalation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"UpWatch/internal/checker/domain"
	"UpWatch/pkg/besteffort"
)

// Dispatcher derives incident events from a run's results and delivers them.
// Exactly one delivery path is active per run: the primary events webhook
// when configured, else the fallback chat webhook, else nothing. When both
// are configured the primary wins and the fallback is never evaluated.
type Dispatcher struct {
	events *EventsClient
	chat   *ChatWebhook
	logger *slog.Logger
}

func NewDispatcher(events *EventsClient, chat *ChatWebhook, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		events: events,
		chat:   chat,
		logger: logger,
	}
}

// Dispatch is best-effort end to end: delivery failures are logged and never
// fail the run. prior holds the last up/down state per monitor as persisted
// BEFORE this run's results were written; the trigger/resolve transition is
// computed against it, never against a flag assumed on the current result.
// A nil prior map suppresses resolve events while triggers still go out.
func (d *Dispatcher) Dispatch(ctx context.Context, monitors []*domain.Monitor, results []domain.CheckResult, prior map[string]bool) {
	switch {
	case d.events != nil:
		d.dispatchEvents(ctx, monitors, results, prior)
	case d.chat != nil:
		d.dispatchChat(ctx, monitors, results)
	default:
		d.logger.Debug("no escalation webhook configured")
	}
}

func (d *Dispatcher) dispatchEvents(ctx context.Context, monitors []*domain.Monitor, results []domain.CheckResult, prior map[string]bool) {
	byID := make(map[string]*domain.Monitor, len(monitors))
	for _, m := range monitors {
		byID[m.ID] = m
	}

	for _, result := range results {
		monitor, ok := byID[result.MonitorID]
		if !ok {
			continue
		}

		var event *domain.IncidentEvent
		switch {
		case !result.IsUp:
			event = domain.NewTriggerEvent(d.events.RoutingKey(), monitor, result)
		case wasDown(prior, result.MonitorID):
			event = domain.NewResolveEvent(d.events.RoutingKey(), monitor, result)
		default:
			continue
		}

		besteffort.Do(d.logger, fmt.Sprintf("%s event for monitor %s", event.EventAction, monitor.ID), func() error {
			return d.events.Send(ctx, event)
		})
	}
}

func (d *Dispatcher) dispatchChat(ctx context.Context, monitors []*domain.Monitor, results []domain.CheckResult) {
	byID := make(map[string]*domain.Monitor, len(monitors))
	for _, m := range monitors {
		byID[m.ID] = m
	}

	var lines []string
	for _, result := range results {
		if result.IsUp {
			continue
		}
		monitor, ok := byID[result.MonitorID]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s (%d ms)",
			monitor.HTTPMethod(), monitor.URL, result.Error, result.LatencyMS))
	}

	if len(lines) == 0 {
		return
	}

	text := fmt.Sprintf("%d monitor(s) down\n%s", len(lines), strings.Join(lines, "\n"))
	besteffort.Do(d.logger, "fallback chat notification", func() error {
		return d.chat.Send(ctx, text)
	})
}

func wasDown(prior map[string]bool, monitorID string) bool {
	up, ok := prior[monitorID]
	return ok && !up
}
