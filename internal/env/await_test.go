package env

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDelayElapses(t *testing.T) {
	t.Parallel()
	h := NewHost()
	start := h.Now()
	if err := Delay(context.Background(), h, 10*time.Millisecond); err != nil {
		t.Fatalf("Delay: %v", err)
	}
	if h.Now().Sub(start) < 10*time.Millisecond {
		t.Fatal("Delay returned early")
	}
}

func TestDelayCancelled(t *testing.T) {
	t.Parallel()
	h := NewHost()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Delay(ctx, h, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("Delay = %v, want context.Canceled", err)
	}
}

func TestFirstReturnsWinner(t *testing.T) {
	t.Parallel()
	h := NewHost()
	a := make(chan struct{})
	b := make(chan struct{})
	close(b)

	i, err := First(context.Background(), h, time.Second, a, b)
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if i != 1 {
		t.Fatalf("winner = %d, want 1", i)
	}
}

func TestFirstTimesOut(t *testing.T) {
	t.Parallel()
	h := NewHost()
	cond := make(chan struct{})

	_, err := First(context.Background(), h, 10*time.Millisecond, cond)
	if !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("First = %v, want ErrWaitTimeout", err)
	}
}

func TestFirstNoConditions(t *testing.T) {
	t.Parallel()
	h := NewHost()
	if _, err := First(context.Background(), h, time.Second); err == nil {
		t.Fatal("expected error with no conditions")
	}
}

func TestHostLoadLocation(t *testing.T) {
	t.Parallel()
	h := NewHost()
	if _, err := h.LoadLocation("UTC"); err != nil {
		t.Fatalf("LoadLocation(UTC): %v", err)
	}
	if _, err := h.LoadLocation("Not/AZone"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
