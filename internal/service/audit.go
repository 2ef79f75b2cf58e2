package service

import (
	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/logger"
)

// AuditService appends and reads the security audit log.
type AuditService interface {
	Record(entry domain.AuditEntry)
	Entries(skip, limit int) ([]domain.AuditEntry, error)
	Count() (int64, error)
}

type AuditStorage interface {
	SaveAuditEntry(entry domain.AuditEntry) error
	AuditEntries(skip, limit int) ([]domain.AuditEntry, error)
	AuditCount() (int64, error)
}

type Audit struct {
	storage AuditStorage
}

func NewAudit(storage AuditStorage) *Audit {
	return &Audit{storage: storage}
}

// Record appends one entry. Best-effort: a failure to persist an audit
// row must never abort the action it documents, so errors are logged and
// swallowed here. The dependency runs strictly one way — nothing in the
// recorder calls back into the services it observes.
func (a *Audit) Record(entry domain.AuditEntry) {
	if err := a.storage.SaveAuditEntry(entry); err != nil {
		logger.Log.Error("failed to record audit entry",
			"action", entry.Action,
			"target_type", entry.TargetType,
			"error", err)
	}
}

// Entries returns audit rows newest-first.
func (a *Audit) Entries(skip, limit int) ([]domain.AuditEntry, error) {
	return a.storage.AuditEntries(skip, limit)
}

func (a *Audit) Count() (int64, error) {
	return a.storage.AuditCount()
}
