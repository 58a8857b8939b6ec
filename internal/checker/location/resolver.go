package location

import (
	"bufio"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Unknown is the placeholder location used whenever the trace lookup fails.
const Unknown = "UNKNOWN"

const DefaultTraceURL = "https://www.cloudflare.com/cdn-cgi/trace"

// Resolver tags a run with the probe's geographic location. The trace
// endpoint returns newline-delimited key=value pairs; only "loc=" is
// consumed. The value is scoped to one run and never persisted as
// configuration.
type Resolver struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewResolver(endpoint string, logger *slog.Logger) *Resolver {
	if endpoint == "" {
		endpoint = DefaultTraceURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Resolve is best-effort: any failure yields Unknown.
func (r *Resolver) Resolve(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		r.logger.Warn("location lookup failed", "error", err)
		return Unknown
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("location lookup failed", "error", err)
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		r.logger.Warn("location lookup failed", "status", resp.StatusCode)
		return Unknown
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if value, found := strings.CutPrefix(line, "loc="); found && value != "" {
			return value
		}
	}

	r.logger.Warn("location lookup returned no loc entry")
	return Unknown
}
