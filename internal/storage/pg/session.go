package pg

import (
	"fmt"
	"time"

	"github.com/jotter-dev/jotter/internal/domain"
	internal_errors "github.com/jotter-dev/jotter/internal/errors"
)

// =========================================================================
// Refresh sessions — one live row per account.
// =========================================================================

// SaveRefreshSession stores a refresh token for the account, replacing
// any previous one. Single active session per account.
func (s *Storage) SaveRefreshSession(session domain.RefreshSession) error {
	_, err := s.db.Exec(`
        INSERT INTO refresh_sessions(account_id, token, expires_at)
        VALUES($1, $2, $3)
        ON CONFLICT (account_id) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`,
		session.AccountId, session.Token, session.Expires)
	if err != nil {
		return fmt.Errorf("failed to save refresh session: %w", err)
	}
	return nil
}

// RotateRefreshSession swaps the stored token for a new one, but only if
// the presented token is the live, unexpired one. Exactly one of any
// concurrent rotations with the same token can win; the rest see
// InvalidOrExpiredToken.
func (s *Storage) RotateRefreshSession(accountId domain.AccountId, presented string, next domain.RefreshSession) error {
	result, err := s.db.Exec(`
        UPDATE refresh_sessions SET token = $1, expires_at = $2
        WHERE account_id = $3 AND token = $4 AND expires_at > $5`,
		next.Token, next.Expires, accountId, presented, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to rotate refresh session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for rotation: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NewInvalidOrExpiredToken()
	}
	return nil
}

// DeleteRefreshSession revokes the account's session. Idempotent: missing
// rows are not an error.
func (s *Storage) DeleteRefreshSession(accountId domain.AccountId) error {
	if _, err := s.db.Exec("DELETE FROM refresh_sessions WHERE account_id = $1", accountId); err != nil {
		return fmt.Errorf("failed to delete refresh session: %w", err)
	}
	return nil
}

// =========================================================================
// Password reset tickets — single use, short TTL.
// =========================================================================

// SaveResetTicket stores a new reset ticket.
func (s *Storage) SaveResetTicket(ticket domain.PasswordResetTicket) error {
	_, err := s.db.Exec(`
        INSERT INTO password_reset_tickets(token, account_id, expires_at)
        VALUES($1, $2, $3)`,
		ticket.Token, ticket.AccountId, ticket.Expires)
	if err != nil {
		return fmt.Errorf("failed to save reset ticket: %w", err)
	}
	return nil
}

// ConsumeResetTicket deletes the ticket and returns it. The DELETE is the
// consumption point: two concurrent calls with the same token race on the
// row and only the first gets it back. An expired ticket is still removed
// but reported as invalid.
func (s *Storage) ConsumeResetTicket(token string) (domain.PasswordResetTicket, error) {
	var ticket domain.PasswordResetTicket
	err := s.db.QueryRow(`
        DELETE FROM password_reset_tickets
        WHERE token = $1
        RETURNING token, account_id, (expires_at at time zone 'utc')`, token,
	).Scan(&ticket.Token, &ticket.AccountId, &ticket.Expires)
	if err != nil {
		if isNoRows(err) {
			return domain.PasswordResetTicket{}, internal_errors.NewInvalidOrExpiredToken()
		}
		return domain.PasswordResetTicket{}, fmt.Errorf("failed to consume reset ticket: %w", err)
	}
	if ticket.Expires.Before(time.Now().UTC()) {
		return domain.PasswordResetTicket{}, internal_errors.NewInvalidOrExpiredToken()
	}
	return ticket, nil
}
