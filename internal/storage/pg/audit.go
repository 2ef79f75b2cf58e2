package pg

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jotter-dev/jotter/internal/domain"
)

// SaveAuditEntry appends one row to the audit log. The log is append-only:
// no update or delete path exists in this package.
func (s *Storage) SaveAuditEntry(entry domain.AuditEntry) error {
	var payload interface{}
	if entry.Payload != nil {
		raw, err := json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal audit payload: %w", err)
		}
		payload = raw
	}

	_, err := s.db.Exec(`
        INSERT INTO audit_log(actor_id, action, target_type, target_id, ip, user_agent, payload)
        VALUES($1, $2, $3, $4, $5, $6, $7)`,
		entry.ActorId, entry.Action, nullIfEmpty(entry.TargetType), entry.TargetId,
		nullIfEmpty(entry.Ip), nullIfEmpty(entry.UserAgent), payload)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// AuditEntries returns entries newest-first with offset paging.
func (s *Storage) AuditEntries(skip, limit int) ([]domain.AuditEntry, error) {
	rows, err := s.db.Query(`
        SELECT id, actor_id, action, target_type, target_id, ip, user_agent, payload, created_at
        FROM audit_log
        ORDER BY created_at DESC, id DESC
        OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AuditCount returns the total number of audit entries.
func (s *Storage) AuditCount() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT count(*) FROM audit_log").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return count, nil
}

func scanAuditEntry(row rowScanner) (domain.AuditEntry, error) {
	var entry domain.AuditEntry
	var targetType, ip, userAgent sql.NullString
	var payload []byte
	err := row.Scan(&entry.Id, &entry.ActorId, &entry.Action, &targetType,
		&entry.TargetId, &ip, &userAgent, &payload, &entry.CreatedAt)
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("failed to scan audit row: %w", err)
	}
	entry.TargetType = targetType.String
	entry.Ip = ip.String
	entry.UserAgent = userAgent.String
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &entry.Payload); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("failed to unmarshal audit payload: %w", err)
		}
	}
	return entry, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
