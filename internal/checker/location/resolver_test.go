package location

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolver_ExtractsLoc(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "fl=123\nip=203.0.113.7\nloc=DE\ncolo=FRA\n")
	}))
	defer s.Close()

	got := NewResolver(s.URL, nil).Resolve(context.Background())
	if got != "DE" {
		t.Fatalf("want DE, got %q", got)
	}
}

func TestResolver_MissingLocIsUnknown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "fl=123\nip=203.0.113.7\n")
	}))
	defer s.Close()

	if got := NewResolver(s.URL, nil).Resolve(context.Background()); got != Unknown {
		t.Fatalf("want %q, got %q", Unknown, got)
	}
}

func TestResolver_Non2xxIsUnknown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer s.Close()

	if got := NewResolver(s.URL, nil).Resolve(context.Background()); got != Unknown {
		t.Fatalf("want %q, got %q", Unknown, got)
	}
}

func TestResolver_UnreachableIsUnknown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close()

	if got := NewResolver(url, nil).Resolve(context.Background()); got != Unknown {
		t.Fatalf("want %q, got %q", Unknown, got)
	}
}
