package runner

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"UpWatch/internal/checker/domain"
)

func intp(i int) *int { return &i }

func TestHTTPRunner_ExpectedStatusMatch(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer s.Close()

	out := NewHTTPRunner().Execute(context.Background(), &domain.Monitor{
		ID:             "m1",
		URL:            s.URL,
		ExpectedStatus: intp(200),
	})
	if !out.IsUp {
		t.Fatalf("want up, got %+v", out)
	}
	if out.Error != "" {
		t.Fatalf("want empty error, got %q", out.Error)
	}
	if out.StatusCode != 200 {
		t.Fatalf("want status 200, got %d", out.StatusCode)
	}
}

func TestHTTPRunner_ExpectedStatusMismatch(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
	}))
	defer s.Close()

	out := NewHTTPRunner().Execute(context.Background(), &domain.Monitor{
		ID:             "m1",
		URL:            s.URL,
		ExpectedStatus: intp(200),
	})
	if out.IsUp {
		t.Fatalf("want down, got %+v", out)
	}
	if out.Error != "Status 503" {
		t.Fatalf("want %q, got %q", "Status 503", out.Error)
	}
}

func TestHTTPRunner_Any2xxWithoutExpectedStatus(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(204)
	}))
	defer s.Close()

	out := NewHTTPRunner().Execute(context.Background(), &domain.Monitor{ID: "m1", URL: s.URL})
	if !out.IsUp {
		t.Fatalf("204 should pass without expected_status, got %+v", out)
	}
}

func TestHTTPRunner_KeywordFound(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Service OK")
	}))
	defer s.Close()

	out := NewHTTPRunner().Execute(context.Background(), &domain.Monitor{
		ID:              "m1",
		URL:             s.URL,
		ResponseKeyword: "OK",
	})
	if !out.IsUp {
		t.Fatalf("want up with keyword present, got %+v", out)
	}
}

func TestHTTPRunner_KeywordMissing(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "degraded")
	}))
	defer s.Close()

	out := NewHTTPRunner().Execute(context.Background(), &domain.Monitor{
		ID:              "m1",
		URL:             s.URL,
		ResponseKeyword: "OK",
	})
	if out.IsUp {
		t.Fatalf("want down with keyword missing, got %+v", out)
	}
	if out.StatusCode != 200 {
		t.Fatalf("status code should still be recorded, got %d", out.StatusCode)
	}
}

func TestHTTPRunner_ForbiddenKeywordPresent(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "internal ERROR trace")
	}))
	defer s.Close()

	out := NewHTTPRunner().Execute(context.Background(), &domain.Monitor{
		ID:                       "m1",
		URL:                      s.URL,
		ResponseForbiddenKeyword: "ERROR",
	})
	if out.IsUp {
		t.Fatalf("want down with forbidden keyword present, got %+v", out)
	}
}

func TestHTTPRunner_Timeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer s.Close()

	out := NewHTTPRunner().Execute(context.Background(), &domain.Monitor{
		ID:        "m1",
		URL:       s.URL,
		TimeoutMS: 50,
	})
	if out.IsUp {
		t.Fatalf("want down on timeout, got %+v", out)
	}
	if out.Error != "Connection timeout" {
		t.Fatalf("want %q, got %q", "Connection timeout", out.Error)
	}
	if out.StatusCode != 0 {
		t.Fatalf("want status 0 on transport error, got %d", out.StatusCode)
	}
}

func TestHTTPRunner_RedirectPolicy(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer final.Close()
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusMovedPermanently)
	}))
	defer s.Close()

	r := NewHTTPRunner()

	// not following: the 301 itself is the evaluated response
	out := r.Execute(context.Background(), &domain.Monitor{
		ID:             "m1",
		URL:            s.URL,
		ExpectedStatus: intp(301),
		FollowRedirect: false,
	})
	if !out.IsUp || out.StatusCode != 301 {
		t.Fatalf("want up on 301 without follow, got %+v", out)
	}

	// following: lands on the 200
	out = r.Execute(context.Background(), &domain.Monitor{
		ID:             "m1",
		URL:            s.URL,
		FollowRedirect: true,
	})
	if !out.IsUp || out.StatusCode != 200 {
		t.Fatalf("want up on followed redirect, got %+v", out)
	}
}

func TestHTTPRunner_BodyOnlyForNonGet(t *testing.T) {
	var gotBody string
	var gotHeader string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotHeader = r.Header.Get("X-Token")
	}))
	defer s.Close()

	r := NewHTTPRunner()

	r.Execute(context.Background(), &domain.Monitor{
		ID:      "m1",
		URL:     s.URL,
		Method:  domain.MethodPost,
		Body:    `{"ping":true}`,
		Headers: map[string]string{"X-Token": "abc"},
	})
	if gotBody != `{"ping":true}` {
		t.Fatalf("POST body not sent: %q", gotBody)
	}
	if gotHeader != "abc" {
		t.Fatalf("header not sent: %q", gotHeader)
	}

	r.Execute(context.Background(), &domain.Monitor{
		ID:     "m1",
		URL:    s.URL,
		Method: domain.MethodGet,
		Body:   "ignored",
	})
	if gotBody != "" {
		t.Fatalf("GET must not carry a body, got %q", gotBody)
	}
}

func TestHTTPRunner_ConnectionRefused(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close()

	out := NewHTTPRunner().Execute(context.Background(), &domain.Monitor{ID: "m1", URL: url})
	if out.IsUp {
		t.Fatalf("want down on refused connection, got %+v", out)
	}
	if out.Error == "" {
		t.Fatalf("want descriptive error")
	}
}
