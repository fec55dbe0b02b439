package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/achievement-console/internal/models"
	"github.com/noah-isme/achievement-console/pkg/jobs"
)

const auditWriteTimeout = 3 * time.Second

type auditStore interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuditDispatcher writes audit entries in the background so a slow database
// never delays a console response.
type AuditDispatcher struct {
	queue *jobs.Queue[*models.AuditLog]
}

// NewAuditDispatcher constructs a dispatcher writing to store.
func NewAuditDispatcher(store auditStore, logger *zap.Logger) *AuditDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	write := func(ctx context.Context, entry *models.AuditLog) error {
		ctx, cancel := context.WithTimeout(ctx, auditWriteTimeout)
		defer cancel()
		return store.Create(ctx, entry)
	}
	return &AuditDispatcher{
		queue: jobs.NewQueue("audit", write, jobs.QueueConfig{
			Workers:     2,
			BufferSize:  256,
			MaxAttempts: 3,
			RetryDelay:  500 * time.Millisecond,
			Logger:      logger,
		}),
	}
}

// Start launches the writers.
func (d *AuditDispatcher) Start() { d.queue.Start() }

// Stop flushes pending entries.
func (d *AuditDispatcher) Stop() { d.queue.Stop() }

// Create enqueues entry. It fails only when the buffer is full or the
// dispatcher is stopped.
func (d *AuditDispatcher) Create(_ context.Context, entry *models.AuditLog) error {
	return d.queue.TryEnqueue(entry)
}
