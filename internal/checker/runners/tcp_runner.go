package runner

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"UpWatch/internal/checker/domain"
)

// TCPRunner probes port reachability with a real TCP dial: an accepted
// connection is up, a dial timeout is down with "Connection timeout",
// anything else (refused, unreachable, resolution failure) is down with the
// dial error.
type TCPRunner struct {
	dialer net.Dialer
}

func NewTCPRunner() *TCPRunner {
	return &TCPRunner{}
}

func (r *TCPRunner) Execute(ctx context.Context, monitor *domain.Monitor) domain.CheckResult {
	address, err := parseHostPort(monitor.URL)
	if err != nil {
		// Malformed target: fail without any network call.
		return domain.NewDownResult(monitor.ID, 0, 0, fmt.Sprintf("invalid target: %s", err))
	}

	ctx, cancel := context.WithTimeout(ctx, monitor.Timeout())
	defer cancel()

	start := time.Now()
	conn, err := r.dialer.DialContext(ctx, "tcp", address)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		reason := err.Error()
		if isTimeout(err) {
			reason = timeoutReason
		}
		return domain.NewDownResult(monitor.ID, 0, latency, reason)
	}
	conn.Close()

	return domain.NewUpResult(monitor.ID, 0, latency)
}

// parseHostPort accepts "host:port" or a URL whose authority carries an
// explicit port.
func parseHostPort(target string) (string, error) {
	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", err
		}
		target = u.Host
	}

	host, port, err := net.SplitHostPort(target)
	if err != nil {
		return "", err
	}
	if host == "" || port == "" {
		return "", fmt.Errorf("missing host or port in %q", target)
	}
	return net.JoinHostPort(host, port), nil
}
