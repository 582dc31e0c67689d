package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-revenue-sync/internal/adapter"
	"github.com/feral-file/ff-revenue-sync/internal/config"
	"github.com/feral-file/ff-revenue-sync/internal/logger"
)

// ErrQueueClosed is returned by Request once Close has been called
var ErrQueueClosed = errors.New("rate limit queue is closed")

// RequestFunc is a function that performs the actual API request
// It receives a context and returns the result and any error
type RequestFunc func(ctx context.Context) (interface{}, error)

// requestResult wraps the result and error of a request
type requestResult struct {
	value interface{}
	err   error
}

// Queue serializes and paces upstream requests.
// Requests are dispatched one at a time in submission order, and consecutive
// dispatches are at least Interval() apart no matter how many callers are waiting.
//
//go:generate mockgen -source=queue.go -destination=../mocks/ratelimit_queue.go -package=mocks -mock_names=Queue=MockRateLimitQueue
type Queue interface {
	// Request submits a request and blocks until it has been dispatched and completed
	Request(ctx context.Context, fn RequestFunc) (interface{}, error)

	// Interval returns the minimum spacing between two dispatches
	Interval() time.Duration

	// Close waits for queued requests and rejects new ones
	Close() error
}

// Config holds the queue configuration
type Config struct {
	// MaxRequestsPerMinute is clamped to [10, 200]
	MaxRequestsPerMinute int
}

type queue struct {
	interval  time.Duration
	pool      pond.ResultPool[*requestResult]
	clock     adapter.Clock
	closed    atomic.Bool
	closeOnce sync.Once

	// lastDispatch is only accessed from the single pool worker
	lastDispatch time.Time
}

// IntervalFor returns the dispatch spacing for a per-minute request budget
func IntervalFor(maxRequestsPerMinute int) time.Duration {
	rpm := config.ClampRequestsPerMinute(maxRequestsPerMinute)
	return time.Minute / time.Duration(rpm)
}

// NewQueue creates a new rate-limited request queue
func NewQueue(cfg Config, clock adapter.Clock) Queue {
	interval := IntervalFor(cfg.MaxRequestsPerMinute)

	// A single worker gives FIFO, non-overlapping dispatch
	pool := pond.NewResultPool[*requestResult](1)

	logger.Info("Rate limit queue initialized",
		zap.Int("max_requests_per_minute", config.ClampRequestsPerMinute(cfg.MaxRequestsPerMinute)),
		zap.Duration("interval", interval),
	)

	return &queue{
		interval: interval,
		pool:     pool,
		clock:    clock,
	}
}

// Request submits a rate-limited request and returns the result with type safety
func Request[T any](ctx context.Context, q Queue, fn func(ctx context.Context) (T, error)) (T, error) {
	// If queue is nil, execute the function directly
	if q == nil {
		return fn(ctx)
	}

	var zero T
	result, err := q.Request(ctx, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}

// Interval returns the minimum spacing between two dispatches
func (q *queue) Interval() time.Duration {
	return q.interval
}

// Request submits a request to the queue.
// The function blocks until:
// 1. The request has been dispatched and completed
// 2. The context is canceled while the request is waiting for its slot
func (q *queue) Request(ctx context.Context, fn RequestFunc) (interface{}, error) {
	if q.closed.Load() {
		return nil, ErrQueueClosed
	}

	task := q.pool.Submit(func() *requestResult {
		if err := q.waitForSlot(ctx); err != nil {
			return &requestResult{err: err}
		}
		q.lastDispatch = q.clock.Now()

		value, err := fn(ctx)
		return &requestResult{value: value, err: err}
	})

	result, err := task.Wait()
	if err != nil {
		return nil, err
	}
	if result.err != nil {
		return nil, result.err
	}
	return result.value, nil
}

// waitForSlot blocks until at least one interval has elapsed since the previous dispatch
func (q *queue) waitForSlot(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if q.lastDispatch.IsZero() {
		return nil
	}

	wait := q.lastDispatch.Add(q.interval).Sub(q.clock.Now())
	if wait <= 0 {
		return nil
	}

	logger.Debug("Waiting for upstream request slot", zap.Duration("wait", wait))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-q.clock.After(wait):
		return nil
	}
}

// Close gracefully shuts down the queue
// It waits for queued requests to complete
func (q *queue) Close() error {
	q.closeOnce.Do(func() {
		q.closed.Store(true)
		logger.Info("Shutting down rate limit queue")
		q.pool.StopAndWait()
	})
	return nil
}
