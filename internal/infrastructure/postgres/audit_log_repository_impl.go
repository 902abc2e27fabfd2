package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
)

type AuditLogRepository struct {
	pool *pgxpool.Pool
}

func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{pool: pool}
}

// Insert appends one row to audit_logs. created_at is assigned by the
// database, never by the caller.
func (r *AuditLogRepository) Insert(ctx context.Context, e *entity.AuditLog) error {
	var changes []byte
	if len(e.Changes) > 0 {
		b, err := json.Marshal(e.Changes)
		if err != nil {
			return err
		}
		changes = b
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO audit_logs (action, user_id, resource_type, resource_id, changes, status, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, e.Action, e.UserID, e.ResourceType, e.ResourceID, changes, e.Status, e.IPAddress, e.UserAgent)

	return row.Scan(&e.ID, &e.CreatedAt)
}

var _ repository.AuditLogRepository = (*AuditLogRepository)(nil)
