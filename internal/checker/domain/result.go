package domain

import "time"

// CheckResult is the outcome of a single probe. Exactly one is produced per
// active monitor per run and it is never mutated after the run stamps its
// location.
type CheckResult struct {
	MonitorID  string    `json:"monitor_id"`
	Location   string    `json:"location"`
	StatusCode int       `json:"status_code"`
	LatencyMS  int64     `json:"latency_ms"`
	Error      string    `json:"error,omitempty"`
	IsUp       bool      `json:"is_up"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUpResult(monitorID string, statusCode int, latencyMS int64) CheckResult {
	return CheckResult{
		MonitorID:  monitorID,
		StatusCode: statusCode,
		LatencyMS:  latencyMS,
		IsUp:       true,
		CreatedAt:  time.Now(),
	}
}

func NewDownResult(monitorID string, statusCode int, latencyMS int64, reason string) CheckResult {
	return CheckResult{
		MonitorID:  monitorID,
		StatusCode: statusCode,
		LatencyMS:  latencyMS,
		Error:      reason,
		IsUp:       false,
		CreatedAt:  time.Now(),
	}
}
