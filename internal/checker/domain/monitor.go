package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type Method string

const (
	MethodGet      Method = "GET"
	MethodPost     Method = "POST"
	MethodHead     Method = "HEAD"
	MethodPut      Method = "PUT"
	MethodDelete   Method = "DELETE"
	MethodTCPPing  Method = "TCP_PING"
	MethodDNSQuery Method = "DNS_QUERY"
)

const DefaultTimeoutMS = 10000

// Monitor is a configured check target. It is owned and mutated by the
// dashboard/API layers; within a run it is read-only.
type Monitor struct {
	ID                       string            `json:"id"`
	URL                      string            `json:"url"`
	Method                   Method            `json:"method"`
	Headers                  map[string]string `json:"headers,omitempty"`
	Body                     string            `json:"body,omitempty"`
	ExpectedStatus           *int              `json:"expected_status,omitempty"`
	ResponseKeyword          string            `json:"response_keyword,omitempty"`
	ResponseForbiddenKeyword string            `json:"response_forbidden_keyword,omitempty"`
	TimeoutMS                int               `json:"timeout_ms"`
	FollowRedirect           bool              `json:"follow_redirect"`
	IsActive                 bool              `json:"is_active"`
}

func (m *Monitor) Timeout() time.Duration {
	if m.TimeoutMS <= 0 {
		return DefaultTimeoutMS * time.Millisecond
	}
	return time.Duration(m.TimeoutMS) * time.Millisecond
}

// HTTPMethod returns the method to use for an HTTP probe, defaulting to GET.
func (m *Monitor) HTTPMethod() string {
	if m.Method == "" {
		return string(MethodGet)
	}
	return string(m.Method)
}

// ParseHeaders normalizes a raw header blob into a typed map. The store may
// hold either a JSON object or "Key: Value" lines; anything unparseable
// degrades to an empty set instead of failing the monitor.
func ParseHeaders(raw string) map[string]string {
	headers := make(map[string]string)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return headers
	}

	if strings.HasPrefix(raw, "{") {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return headers
		}
		for key, value := range decoded {
			if s, ok := value.(string); ok {
				headers[key] = s
			}
		}
		return headers
	}

	for _, line := range strings.Split(raw, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" {
			headers[key] = value
		}
	}

	return headers
}
