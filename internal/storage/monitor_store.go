package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"UpWatch/internal/checker/domain"
	"UpWatch/pkg/validator"
)

type monitorStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewMonitorStore(pool *pgxpool.Pool, logger *slog.Logger) MonitorStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &monitorStore{pool: pool, logger: logger}
}

// ListActive returns every monitor with is_active = true. Headers are
// normalized into a typed map here, once per run, so strategies never
// re-parse them.
func (s *monitorStore) ListActive(ctx context.Context) ([]*domain.Monitor, error) {
	query := `
		SELECT id, url, COALESCE(method, 'GET'), COALESCE(headers, ''),
		       COALESCE(body, ''), expected_status,
		       COALESCE(response_keyword, ''), COALESCE(response_forbidden_keyword, ''),
		       COALESCE(timeout_ms, $1), COALESCE(follow_redirect, true)
		FROM monitors
		WHERE is_active = true
	`

	rows, err := s.pool.Query(ctx, query, domain.DefaultTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("failed to query active monitors: %w", err)
	}
	defer rows.Close()

	var monitors []*domain.Monitor
	for rows.Next() {
		var (
			m          domain.Monitor
			rawHeaders string
		)
		err := rows.Scan(
			&m.ID,
			&m.URL,
			&m.Method,
			&rawHeaders,
			&m.Body,
			&m.ExpectedStatus,
			&m.ResponseKeyword,
			&m.ResponseForbiddenKeyword,
			&m.TimeoutMS,
			&m.FollowRedirect,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monitor row: %w", err)
		}

		m.Headers = domain.ParseHeaders(rawHeaders)
		m.IsActive = true

		if !validator.ValidateTarget(m.URL) {
			s.logger.Warn("monitor target looks malformed, checking anyway",
				"monitor_id", m.ID,
				"url", m.URL,
			)
		}
		if m.Method != "" && !validator.ValidateMethod(string(m.Method)) {
			s.logger.Warn("unknown monitor method, will be checked as HTTP",
				"monitor_id", m.ID,
				"method", m.Method,
			)
		}

		monitors = append(monitors, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monitor rows: %w", err)
	}

	return monitors, nil
}
