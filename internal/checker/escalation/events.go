package escalation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"UpWatch/internal/checker/domain"
)

const DefaultEventsURL = "https://events.pagerduty.com/v2/enqueue"

// EventsClient delivers trigger/resolve events to the primary incident
// webhook. One POST per event, no retries.
type EventsClient struct {
	endpoint   string
	routingKey string
	client     *http.Client
}

// NewEventsClient returns nil when no routing key is configured, which
// disables the primary delivery path.
func NewEventsClient(endpoint, routingKey string) *EventsClient {
	if routingKey == "" {
		return nil
	}
	if endpoint == "" {
		endpoint = DefaultEventsURL
	}
	return &EventsClient{
		endpoint:   endpoint,
		routingKey: routingKey,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *EventsClient) RoutingKey() string {
	return c.routingKey
}

func (c *EventsClient) Send(ctx context.Context, event *domain.IncidentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal incident event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build event request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post incident event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("events endpoint returned HTTP %d", resp.StatusCode)
	}
	return nil
}
