package pg

import "fmt"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id                 BIGSERIAL PRIMARY KEY,
		email              TEXT NOT NULL UNIQUE,
		password_hash      TEXT NOT NULL,
		role               TEXT NOT NULL DEFAULT 'user',
		is_active          BOOLEAN NOT NULL DEFAULT TRUE,
		is_verified        BOOLEAN NOT NULL DEFAULT FALSE,
		verification_token TEXT,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS accounts_verification_token_idx
		ON accounts (verification_token) WHERE verification_token IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		visibility TEXT NOT NULL DEFAULT 'private',
		is_draft   BOOLEAN NOT NULL DEFAULT FALSE,
		author_id  BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS notes_author_idx ON notes (author_id)`,
	`CREATE INDEX IF NOT EXISTS notes_listing_idx ON notes (visibility, is_draft, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS refresh_sessions (
		account_id BIGINT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
		token      TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS password_reset_tickets (
		token      TEXT PRIMARY KEY,
		account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id          BIGSERIAL PRIMARY KEY,
		actor_id    BIGINT REFERENCES accounts(id) ON DELETE SET NULL,
		action      TEXT NOT NULL,
		target_type TEXT,
		target_id   BIGINT,
		ip          TEXT,
		user_agent  TEXT,
		payload     JSONB,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS audit_log_created_idx ON audit_log (created_at DESC)`,
}

// Bootstrap creates the schema if it does not exist yet. Idempotent.
func (s *Storage) Bootstrap() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
