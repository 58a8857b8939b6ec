package runner

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"UpWatch/internal/checker/domain"
)

const maxBodyBytes = 1 << 20

type HTTPRunner struct {
	client *http.Client
}

func NewHTTPRunner() *HTTPRunner {
	return &HTTPRunner{
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

func (r *HTTPRunner) Execute(ctx context.Context, monitor *domain.Monitor) domain.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, monitor.Timeout())
	defer cancel()

	method := monitor.HTTPMethod()

	var body io.Reader
	if monitor.Body != "" && method != string(domain.MethodGet) && method != string(domain.MethodHead) {
		body = strings.NewReader(monitor.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, monitor.URL, body)
	if err != nil {
		return domain.NewDownResult(monitor.ID, 0, 0, fmt.Sprintf("invalid request: %s", err))
	}

	for key, value := range monitor.Headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", "UpWatch-Checker/1.0")
	}

	client := r.configureClient(monitor.FollowRedirect)

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		reason := err.Error()
		if isTimeout(err) {
			reason = timeoutReason
		}
		return domain.NewDownResult(monitor.ID, 0, latency, reason)
	}
	defer resp.Body.Close()

	if !statusAccepted(monitor, resp.StatusCode) {
		return domain.NewDownResult(monitor.ID, resp.StatusCode, latency, fmt.Sprintf("Status %d", resp.StatusCode))
	}

	// Keyword validation runs only after the status check passed and only
	// when a keyword constraint is configured. A body-read failure here never
	// flips a passing result.
	if monitor.ResponseKeyword != "" || monitor.ResponseForbiddenKeyword != "" {
		if reason, ok := r.validateBody(resp, monitor); !ok {
			return domain.NewDownResult(monitor.ID, resp.StatusCode, latency, reason)
		}
	}

	return domain.NewUpResult(monitor.ID, resp.StatusCode, latency)
}

func (r *HTTPRunner) configureClient(followRedirect bool) *http.Client {
	client := *r.client
	if !followRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return &client
}

func (r *HTTPRunner) validateBody(resp *http.Response, monitor *domain.Monitor) (string, bool) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", true
	}
	text := string(raw)

	if monitor.ResponseKeyword != "" && !strings.Contains(text, monitor.ResponseKeyword) {
		return fmt.Sprintf("Keyword %q not found in response", monitor.ResponseKeyword), false
	}
	if monitor.ResponseForbiddenKeyword != "" && strings.Contains(text, monitor.ResponseForbiddenKeyword) {
		return fmt.Sprintf("Forbidden keyword %q found in response", monitor.ResponseForbiddenKeyword), false
	}
	return "", true
}

func statusAccepted(monitor *domain.Monitor, statusCode int) bool {
	if monitor.ExpectedStatus != nil {
		return statusCode == *monitor.ExpectedStatus
	}
	return statusCode >= 200 && statusCode < 300
}
