package runner

import (
	"context"
	"net"
	"testing"
	"time"

	"UpWatch/internal/checker/domain"
)

func TestTCPRunner_AcceptingPortIsUp(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	out := NewTCPRunner().Execute(context.Background(), &domain.Monitor{
		ID:     "m1",
		URL:    ln.Addr().String(),
		Method: domain.MethodTCPPing,
	})
	if !out.IsUp {
		t.Fatalf("want up, got %+v", out)
	}
	if out.StatusCode != 0 {
		t.Fatalf("status_code must be 0 for tcp checks, got %d", out.StatusCode)
	}
	if out.Error != "" {
		t.Fatalf("want empty error, got %q", out.Error)
	}
}

func TestTCPRunner_URLTargetAccepted(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	out := NewTCPRunner().Execute(context.Background(), &domain.Monitor{
		ID:     "m1",
		URL:    "http://" + ln.Addr().String(),
		Method: domain.MethodTCPPing,
	})
	if !out.IsUp {
		t.Fatalf("want up for URL-form target, got %+v", out)
	}
}

func TestTCPRunner_MalformedTargetNoNetworkCall(t *testing.T) {
	out := NewTCPRunner().Execute(context.Background(), &domain.Monitor{
		ID:     "m1",
		URL:    "no-port-here",
		Method: domain.MethodTCPPing,
	})
	if out.IsUp {
		t.Fatalf("want down for malformed target, got %+v", out)
	}
	if out.LatencyMS != 0 {
		t.Fatalf("malformed target must fail before dialing, latency %d", out.LatencyMS)
	}
	if out.Error == "" {
		t.Fatalf("want descriptive error")
	}
}

func TestTCPRunner_ClosedPortIsDownWithoutTimeoutReason(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	out := NewTCPRunner().Execute(context.Background(), &domain.Monitor{
		ID:     "m1",
		URL:    addr,
		Method: domain.MethodTCPPing,
	})
	if out.IsUp {
		t.Fatalf("want down for closed port, got %+v", out)
	}
	if out.Error == "Connection timeout" {
		t.Fatalf("refused connection must not be classified as timeout")
	}
}

func TestTCPRunner_TimeoutReason(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	out := NewTCPRunner().Execute(ctx, &domain.Monitor{
		ID:     "m1",
		URL:    ln.Addr().String(),
		Method: domain.MethodTCPPing,
	})
	if out.IsUp {
		t.Fatalf("want down on timeout, got %+v", out)
	}
	if out.Error != "Connection timeout" {
		t.Fatalf("want %q, got %q", "Connection timeout", out.Error)
	}
}
