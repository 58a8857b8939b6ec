// Package besteffort formalizes fire-and-forget side effects: attempt once,
// log the failure, never propagate it.
package besteffort

import "log/slog"

func Do(logger *slog.Logger, op string, fn func() error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := fn(); err != nil {
		logger.Warn("best-effort operation failed",
			"op", op,
			"error", err,
		)
	}
}
