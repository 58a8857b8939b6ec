package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"UpWatch/internal/checker/domain"
)

type resultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) ResultStore {
	return &resultStore{pool: pool}
}

// AppendBatch persists a run's results in one batched round trip.
// created_at is stored as epoch seconds.
func (s *resultStore) AppendBatch(ctx context.Context, results []domain.CheckResult) error {
	if len(results) == 0 {
		return nil
	}

	query := `
		INSERT INTO check_results (monitor_id, location, status, latency, error, is_up, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, r := range results {
		batch.Queue(query,
			r.MonitorID,
			r.Location,
			r.StatusCode,
			r.LatencyMS,
			r.Error,
			r.IsUp,
			r.CreatedAt.Unix(),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	for range results {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to append check results: %w", err)
		}
	}

	return br.Close()
}

// LastStates returns the most recently persisted is_up per monitor_id.
// Monitors with no history are absent from the map.
func (s *resultStore) LastStates(ctx context.Context, monitorIDs []string) (map[string]bool, error) {
	states := make(map[string]bool, len(monitorIDs))
	if len(monitorIDs) == 0 {
		return states, nil
	}

	query := `
		SELECT DISTINCT ON (monitor_id) monitor_id, is_up
		FROM check_results
		WHERE monitor_id = ANY($1)
		ORDER BY monitor_id, created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, monitorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query last states: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			monitorID string
			isUp      bool
		)
		if err := rows.Scan(&monitorID, &isUp); err != nil {
			return nil, fmt.Errorf("failed to scan state row: %w", err)
		}
		states[monitorID] = isUp
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating state rows: %w", err)
	}

	return states, nil
}
