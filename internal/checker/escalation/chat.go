package escalation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ChatWebhook is the fallback delivery path: one combined chat-style
// message per run listing all currently-down monitors.
type ChatWebhook struct {
	webhook string
	client  *http.Client
}

func NewChatWebhook(webhook string) *ChatWebhook {
	if webhook == "" {
		return nil
	}
	return &ChatWebhook{
		webhook: webhook,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type chatPayload struct {
	Text string `json:"text"`
}

func (c *ChatWebhook) Send(ctx context.Context, text string) error {
	body, _ := json.Marshal(chatPayload{Text: text})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post chat message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("chat webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
