package domain

import (
	"fmt"
	"time"
)

type EventAction string

const (
	ActionTrigger EventAction = "trigger"
	ActionResolve EventAction = "resolve"
)

const (
	SeverityCritical = "critical"
	SeverityInfo     = "info"
)

// IncidentEvent follows the events-v2 enqueue wire format. DedupKey equals
// the monitor id so the receiver can pair trigger/resolve into one incident
// across runs.
type IncidentEvent struct {
	RoutingKey  string       `json:"routing_key"`
	EventAction EventAction  `json:"event_action"`
	DedupKey    string       `json:"dedup_key"`
	Payload     EventPayload `json:"payload"`
}

type EventPayload struct {
	Summary       string         `json:"summary"`
	Source        string         `json:"source"`
	Severity      string         `json:"severity"`
	Timestamp     string         `json:"timestamp"`
	CustomDetails map[string]any `json:"custom_details,omitempty"`
}

func NewTriggerEvent(routingKey string, monitor *Monitor, result CheckResult) *IncidentEvent {
	return &IncidentEvent{
		RoutingKey:  routingKey,
		EventAction: ActionTrigger,
		DedupKey:    monitor.ID,
		Payload: EventPayload{
			Summary:       fmt.Sprintf("%s %s is DOWN: %s", monitor.HTTPMethod(), monitor.URL, result.Error),
			Source:        result.Location,
			Severity:      SeverityCritical,
			Timestamp:     result.CreatedAt.UTC().Format(time.RFC3339),
			CustomDetails: eventDetails(monitor, result),
		},
	}
}

func NewResolveEvent(routingKey string, monitor *Monitor, result CheckResult) *IncidentEvent {
	return &IncidentEvent{
		RoutingKey:  routingKey,
		EventAction: ActionResolve,
		DedupKey:    monitor.ID,
		Payload: EventPayload{
			Summary:       fmt.Sprintf("%s %s is UP again", monitor.HTTPMethod(), monitor.URL),
			Source:        result.Location,
			Severity:      SeverityInfo,
			Timestamp:     result.CreatedAt.UTC().Format(time.RFC3339),
			CustomDetails: eventDetails(monitor, result),
		},
	}
}

func eventDetails(monitor *Monitor, result CheckResult) map[string]any {
	return map[string]any{
		"monitor_id":  monitor.ID,
		"url":         monitor.URL,
		"method":      monitor.HTTPMethod(),
		"status_code": result.StatusCode,
		"latency_ms":  result.LatencyMS,
		"error":       result.Error,
		"location":    result.Location,
	}
}
