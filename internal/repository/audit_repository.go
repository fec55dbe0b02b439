package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/achievement-console/internal/models"
)

// AuditRepository persists console audit logs in Postgres.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new instance of AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create stores an audit log entry.
func (r *AuditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	if len(log.Details) == 0 {
		log.Details = types.JSONText("{}")
	}
	const query = `INSERT INTO console_audit_logs (id, user_id, action, resource, resource_id, details, ip_address, user_agent, created_at) VALUES (:id, :user_id, :action, :resource, :resource_id, :details, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List returns the most recent audit logs matching the filter.
func (r *AuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	var conditions []string
	var args []interface{}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	if filter.Resource != "" {
		args = append(args, filter.Resource)
		conditions = append(conditions, fmt.Sprintf("resource = $%d", len(args)))
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `SELECT id, user_id, action, resource, resource_id, details, ip_address, user_agent, created_at FROM console_audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	logs := make([]models.AuditLog, 0)
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
