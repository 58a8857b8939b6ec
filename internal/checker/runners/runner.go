package runner

import (
	"context"
	"errors"
	"net"

	"UpWatch/internal/checker/domain"
)

// Runner is one protocol-specific check strategy. Execute never returns an
// error: every failure mode is folded into the CheckResult so one bad check
// cannot abort a batch.
type Runner interface {
	Execute(ctx context.Context, monitor *domain.Monitor) domain.CheckResult
}

const timeoutReason = "Connection timeout"

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
