package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/regexfav/internal/community"
	"github.com/five82/regexfav/internal/favorites"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
	maxAttempts          = 4
	queueSize            = 64
)

// ErrQueueFull is returned when the dispatcher cannot accept more work.
var ErrQueueFull = errors.New("dispatch queue full")

type jobKind int

const (
	jobRate jobKind = iota
	jobVisit
)

func (k jobKind) String() string {
	if k == jobRate {
		return "rate"
	}
	return "visit"
}

type job struct {
	kind   jobKind
	id     string
	rating int
}

// Dispatcher serves pattern lookups directly and queues rating and visit
// calls for a background goroutine that retries them with backoff. The UI
// loop never waits on those side effects.
type Dispatcher struct {
	client   community.PatternService
	logger   zerolog.Logger
	jobs     chan job
	interval time.Duration
	wg       sync.WaitGroup
}

var _ favorites.Service = (*Dispatcher)(nil)

// NewDispatcher wraps client. A non-positive interval uses the default retry
// interval.
func NewDispatcher(client community.PatternService, logger zerolog.Logger, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	return &Dispatcher{
		client:   client,
		logger:   logger,
		jobs:     make(chan job, queueSize),
		interval: interval,
	}
}

// Start launches the worker goroutine. It returns immediately; the worker
// exits when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				if n := len(d.jobs); n > 0 {
					d.logger.Warn().Int("pending", n).Msg("dropping queued calls on shutdown")
				}
				return
			case j := <-d.jobs:
				d.run(ctx, j)
			}
		}
	}()
}

// Wait blocks until the worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// PatternList fetches records synchronously; callers run it off the UI loop.
func (d *Dispatcher) PatternList(ctx context.Context, ids []string) ([]favorites.Record, error) {
	return d.client.PatternList(ctx, ids)
}

// Rate queues a rating submission.
func (d *Dispatcher) Rate(_ context.Context, id string, rating int) error {
	return d.enqueue(job{kind: jobRate, id: id, rating: rating})
}

// TrackVisit queues a visit record.
func (d *Dispatcher) TrackVisit(_ context.Context, id string) error {
	return d.enqueue(job{kind: jobVisit, id: id})
}

func (d *Dispatcher) enqueue(j job) error {
	select {
	case d.jobs <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) run(ctx context.Context, j job) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := d.call(ctx, j)
		if err == nil {
			d.logger.Debug().Str("call", j.kind.String()).Str("id", j.id).Msg("call delivered")
			return
		}
		wait := calculateBackoff(attempt, d.interval)
		d.logger.Warn().Err(err).
			Str("call", j.kind.String()).
			Str("id", j.id).
			Int("attempt", attempt+1).
			Dur("retry_in", wait).
			Msg("call failed")
		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
	d.logger.Error().Str("call", j.kind.String()).Str("id", j.id).Msg("giving up")
}

func (d *Dispatcher) call(ctx context.Context, j job) error {
	switch j.kind {
	case jobRate:
		return d.client.Rate(ctx, j.id, j.rating)
	default:
		return d.client.TrackVisit(ctx, j.id)
	}
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
