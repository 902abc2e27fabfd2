package application

import (
	"context"
	"expvar"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openpaths/reentry-api/internal/domain/entity"
	"github.com/openpaths/reentry-api/internal/domain/repository"
)

// writeFailures is exported on /debug/vars so operators can detect
// sustained audit-write failure despite the swallow-everything contract.
var writeFailures = expvar.NewInt("audit_write_failures")

// AuditRecorder appends audit trail entries best-effort: a failed write
// is retried once, then logged and counted, and never reaches the
// caller. Audit-trail unavailability must not block the user action
// that triggered it.
type AuditRecorder struct {
	Repo         repository.AuditLogRepository
	Logger       *logrus.Logger
	RetryBackoff time.Duration
}

func NewAuditRecorder(repo repository.AuditLogRepository, logger *logrus.Logger) *AuditRecorder {
	return &AuditRecorder{Repo: repo, Logger: logger, RetryBackoff: 50 * time.Millisecond}
}

// Record writes the entry. It deliberately has no error return.
func (r *AuditRecorder) Record(ctx context.Context, e *entity.AuditLog) {
	if r == nil || r.Repo == nil {
		return
	}
	if e.Action == "" || e.UserID == "" {
		if r.Logger != nil {
			r.Logger.WithFields(logrus.Fields{"action": e.Action, "user_id": e.UserID}).
				Warn("dropping audit entry with missing action or actor")
		}
		return
	}

	err := r.Repo.Insert(ctx, e)
	if err != nil {
		time.Sleep(r.RetryBackoff)
		err = r.Repo.Insert(ctx, e)
	}
	if err != nil {
		writeFailures.Add(1)
		if r.Logger != nil {
			r.Logger.WithError(err).WithFields(logrus.Fields{
				"action":  e.Action,
				"user_id": e.UserID,
			}).Error("audit write failed")
		}
	}
}

// WriteFailures reports the process-wide count of dropped audit entries.
func WriteFailures() int64 {
	return writeFailures.Value()
}
