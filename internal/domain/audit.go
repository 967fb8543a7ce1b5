package domain

import "time"

// AuditAction values recorded per mutating operation
type AuditAction string

const (
	AuditCreated       AuditAction = "created"
	AuditUpdated       AuditAction = "updated"
	AuditCancelled     AuditAction = "cancelled"
	AuditAutoCancelled AuditAction = "auto_cancelled"
	AuditNoShow        AuditAction = "no_show"
)

// AuditLog is one before/after snapshot of a mutating operation.
// UserID is nil for system-initiated actions.
type AuditLog struct {
	ID         int64
	EntityType string
	EntityID   int64
	Action     AuditAction
	UserID     *int64
	BeforeJSON *string
	AfterJSON  *string
	CreatedAt  time.Time
}
