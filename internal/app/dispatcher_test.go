package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/regexfav/internal/community"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakeClient struct {
	mu       sync.Mutex
	failures int
	calls    []string
	done     chan string
	records  []community.Pattern
}

func (f *fakeClient) PatternList(_ context.Context, ids []string) ([]community.Pattern, error) {
	return f.records, nil
}

func (f *fakeClient) Rate(_ context.Context, id string, rating int) error {
	return f.record(fmt.Sprintf("rate:%s:%d", id, rating))
}

func (f *fakeClient) TrackVisit(_ context.Context, id string) error {
	return f.record("visit:" + id)
}

func (f *fakeClient) record(call string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	fail := f.failures > 0
	if fail {
		f.failures--
	}
	f.mu.Unlock()
	if fail {
		return errors.New("unavailable")
	}
	f.done <- call
	return nil
}

func waitCall(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case call := <-ch:
		return call
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for dispatched call")
		return ""
	}
}

func TestDispatcher_DeliversQueuedCalls(t *testing.T) {
	client := &fakeClient{done: make(chan string, 4)}
	d := NewDispatcher(client, zerolog.Nop(), time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	t.Cleanup(func() {
		cancel()
		d.Wait()
	})

	if err := d.Rate(ctx, "12", 4); err != nil {
		t.Fatalf("Rate returned error: %v", err)
	}
	if err := d.TrackVisit(ctx, "40"); err != nil {
		t.Fatalf("TrackVisit returned error: %v", err)
	}

	if got := waitCall(t, client.done); got != "rate:12:4" {
		t.Fatalf("first call = %q, want rate:12:4", got)
	}
	if got := waitCall(t, client.done); got != "visit:40" {
		t.Fatalf("second call = %q, want visit:40", got)
	}
}

func TestDispatcher_RetriesFailedCalls(t *testing.T) {
	client := &fakeClient{done: make(chan string, 1), failures: 2}
	d := NewDispatcher(client, zerolog.Nop(), time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	t.Cleanup(func() {
		cancel()
		d.Wait()
	})

	if err := d.TrackVisit(ctx, "7"); err != nil {
		t.Fatalf("TrackVisit returned error: %v", err)
	}
	if got := waitCall(t, client.done); got != "visit:7" {
		t.Fatalf("call = %q, want visit:7", got)
	}

	client.mu.Lock()
	defer client.mu.Unlock()
	if len(client.calls) != 3 {
		t.Fatalf("attempts = %d, want 3", len(client.calls))
	}
}

func TestDispatcher_QueueFull(t *testing.T) {
	d := NewDispatcher(&fakeClient{}, zerolog.Nop(), 0)
	for i := 0; i < queueSize; i++ {
		if err := d.TrackVisit(context.Background(), "1"); err != nil {
			t.Fatalf("TrackVisit %d returned error: %v", i, err)
		}
	}
	if err := d.TrackVisit(context.Background(), "1"); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("TrackVisit error = %v, want ErrQueueFull", err)
	}
}

func TestDispatcher_PatternListPassesThrough(t *testing.T) {
	client := &fakeClient{records: []community.Pattern{{ID: "1"}}}
	d := NewDispatcher(client, zerolog.Nop(), 0)

	got, err := d.PatternList(context.Background(), []string{"1"})
	if err != nil {
		t.Fatalf("PatternList returned error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("PatternList = %#v, want one record with id 1", got)
	}
}
