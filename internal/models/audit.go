package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Audit actions recorded for console mutations.
const (
	AuditActionUserCreate       = "USER_CREATE"
	AuditActionUserUpdate       = "USER_UPDATE"
	AuditActionUserStatus       = "USER_STATUS"
	AuditActionUserDelete       = "USER_DELETE"
	AuditActionSectorCreate     = "SECTOR_CREATE"
	AuditActionSectorUpdate     = "SECTOR_UPDATE"
	AuditActionSectorDelete     = "SECTOR_DELETE"
	AuditActionReportGenerate   = "REPORT_GENERATE"
	AuditActionReportDelete     = "REPORT_DELETE"
	AuditActionReportBulkDelete = "REPORT_BULK_DELETE"
	AuditActionDashboardExport  = "DASHBOARD_EXPORT"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string         `db:"id" json:"id"`
	UserID     *string        `db:"user_id" json:"user_id,omitempty"`
	Action     string         `db:"action" json:"action"`
	Resource   string         `db:"resource" json:"resource"`
	ResourceID *string        `db:"resource_id" json:"resource_id,omitempty"`
	Details    types.JSONText `db:"details" json:"details,omitempty"`
	IPAddress  string         `db:"ip_address" json:"ip_address"`
	UserAgent  string         `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// AuditFilter narrows audit log queries.
type AuditFilter struct {
	UserID   string
	Action   string
	Resource string
	Limit    int
}
