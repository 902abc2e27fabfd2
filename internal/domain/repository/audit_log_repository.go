package repository

import (
	"context"

	"github.com/openpaths/reentry-api/internal/domain/entity"
)

// AuditLogRepository appends records to the audit trail. The table is
// append-only; there are no read, update, or delete operations here.
type AuditLogRepository interface {
	Insert(ctx context.Context, e *entity.AuditLog) error
}
