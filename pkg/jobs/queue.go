package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by TryEnqueue when the buffer has no room.
var ErrQueueFull = errors.New("queue full")

// ErrQueueStopped is returned when enqueuing after Stop or before Start.
var ErrQueueStopped = errors.New("queue not running")

// Handler processes one item.
type Handler[T any] func(ctx context.Context, item T) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers      int
	BufferSize   int
	MaxAttempts  int
	RetryDelay   time.Duration
	DrainTimeout time.Duration
	Logger       *zap.Logger
}

type envelope[T any] struct {
	item    T
	attempt int
}

// Queue is a bounded in-memory work queue backed by goroutines. Items still
// buffered when Stop is called are processed before it returns, within the
// drain timeout.
type Queue[T any] struct {
	name    string
	handler Handler[T]
	cfg     QueueConfig
	logger  *zap.Logger

	items chan envelope[T]
	done  chan struct{}
	wg    sync.WaitGroup

	mu      sync.RWMutex
	running bool
}

// NewQueue builds a new queue with the provided handler.
func NewQueue[T any](name string, handler Handler[T], cfg QueueConfig) *Queue[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 64
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue[T]{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  cfg.Logger.With(zap.String("queue", name)),
		items:   make(chan envelope[T], cfg.BufferSize),
		done:    make(chan struct{}),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (q *Queue[T]) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	q.running = true
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.logger.Info("queue started", zap.Int("workers", q.cfg.Workers))
}

// Stop refuses new items, drains the buffer and waits for the workers.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	close(q.items)
	q.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(q.cfg.DrainTimeout):
		close(q.done)
		q.logger.Warn("queue drain timed out", zap.Int("pending", len(q.items)))
		<-finished
		return
	}
	close(q.done)
	q.logger.Info("queue stopped")
}

// TryEnqueue buffers item without blocking.
func (q *Queue[T]) TryEnqueue(item T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if !q.running {
		return fmt.Errorf("%s: %w", q.name, ErrQueueStopped)
	}
	select {
	case q.items <- envelope[T]{item: item}:
		return nil
	default:
		return fmt.Errorf("%s: %w", q.name, ErrQueueFull)
	}
}

// Len reports the number of buffered items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

func (q *Queue[T]) worker() {
	defer q.wg.Done()
	for env := range q.items {
		q.process(env)
	}
}

func (q *Queue[T]) process(env envelope[T]) {
	for {
		select {
		case <-q.done:
			return
		default:
		}
		env.attempt++
		err := q.handler(context.Background(), env.item)
		if err == nil {
			return
		}
		if env.attempt >= q.cfg.MaxAttempts {
			q.logger.Error("item dropped after failed attempts", zap.Int("attempts", env.attempt), zap.Error(err))
			return
		}
		q.logger.Warn("item failed, retrying", zap.Int("attempt", env.attempt), zap.Error(err))
		select {
		case <-q.done:
			return
		case <-time.After(q.cfg.RetryDelay):
		}
	}
}
