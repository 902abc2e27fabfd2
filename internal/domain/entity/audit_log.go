package entity

import "time"

// Audit outcome values stored in audit_logs.status.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

// AuditLog is one append-only record of a security-relevant action.
// CreatedAt is assigned by the store at write time; rows are never
// updated or deleted.
type AuditLog struct {
	ID           string
	Action       string
	UserID       string
	ResourceType string
	ResourceID   string
	Changes      map[string]any
	Status       string
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}
