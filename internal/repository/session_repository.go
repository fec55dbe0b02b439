package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/achievement-console/internal/models"
	appErrors "github.com/noah-isme/achievement-console/pkg/errors"
)

const sessionKeyPrefix = "console:reports:workspace:"

// SessionRepository keeps per-user reports workspace snapshots in Redis.
// A nil client turns every call into a miss or a no-op.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{client: client, ttl: ttl, logger: logger}
}

// Get loads the snapshot for userID or returns ErrCacheMiss.
func (r *SessionRepository) Get(ctx context.Context, userID string) (*models.WorkspaceSnapshot, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}
	key := sessionKey(userID)
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var snap models.WorkspaceSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal workspace snapshot for %s: %w", key, err)
	}
	return &snap, nil
}

// Save stores the snapshot with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, userID string, snap *models.WorkspaceSnapshot) error {
	if r.client == nil || snap == nil {
		return nil
	}
	key := sessionKey(userID)
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal workspace snapshot for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	r.logger.Debug("workspace snapshot saved", zap.String("key", key))
	return nil
}

// Delete drops the snapshot for userID.
func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	if r.client == nil {
		return nil
	}
	key := sessionKey(userID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}
