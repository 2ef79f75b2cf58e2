package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jotter-dev/jotter/internal/domain"
	internal_errors "github.com/jotter-dev/jotter/internal/errors"
	"github.com/lib/pq"
)

const accountColumns = "id, email, password_hash, role, is_active, is_verified, verification_token, created_at"

// =========================================================================
// Public Methods (satisfy the service storage interfaces)
// =========================================================================

// SaveAccount inserts a new account. Email uniqueness violations come
// back as Conflict so registration can surface a duplicate address.
func (s *Storage) SaveAccount(account domain.Account) (domain.AccountId, error) {
	ctx, cancel := opContext()
	defer cancel()

	var id domain.AccountId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveAccount(tx, account)
		return err
	})
	return id, err
}

// AccountByEmail fetches an account by email address.
func (s *Storage) AccountByEmail(email domain.Email) (domain.Account, error) {
	return s.accountBy(s.db, "email = $1", email)
}

// AccountById fetches an account by primary key.
func (s *Storage) AccountById(id domain.AccountId) (domain.Account, error) {
	return s.accountBy(s.db, "id = $1", id)
}

// ConsumeVerificationToken marks the matching account verified and clears
// the token in one statement, so a token can be consumed exactly once.
func (s *Storage) ConsumeVerificationToken(token string) (domain.AccountId, error) {
	var id domain.AccountId
	err := s.db.QueryRow(`
        UPDATE accounts SET is_verified = TRUE, verification_token = NULL
        WHERE verification_token = $1
        RETURNING id`, token,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.NewInvalidOrExpiredToken()
		}
		return 0, fmt.Errorf("failed to consume verification token: %w", err)
	}
	return id, nil
}

// UpdatePassword replaces the stored password hash.
func (s *Storage) UpdatePassword(id domain.AccountId, passHash string) error {
	ctx, cancel := opContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePassword(tx, id, passHash)
	})
}

// UpdateRole changes an account's role.
func (s *Storage) UpdateRole(id domain.AccountId, role domain.Role) error {
	return s.execOnAccount("UPDATE accounts SET role = $1 WHERE id = $2", string(role), id)
}

// UpdateStatus activates or deactivates an account.
func (s *Storage) UpdateStatus(id domain.AccountId, active bool) error {
	return s.execOnAccount("UPDATE accounts SET is_active = $1 WHERE id = $2", active, id)
}

// DeleteAccount removes an account. The schema's ON DELETE CASCADE cleans
// up notes, sessions and tickets; audit rows keep a NULL actor.
func (s *Storage) DeleteAccount(id domain.AccountId) error {
	ctx, cancel := opContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteAccount(tx, id)
	})
}

// Accounts lists accounts newest-first with offset paging.
func (s *Storage) Accounts(skip, limit int) ([]domain.Account, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
        SELECT %s FROM accounts
        ORDER BY created_at DESC, id DESC
        OFFSET $1 LIMIT $2`, accountColumns), skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveAccount(q Querier, account domain.Account) (domain.AccountId, error) {
	var id domain.AccountId
	err := q.QueryRow(`
        INSERT INTO accounts(email, password_hash, role, is_active, is_verified, verification_token)
        VALUES($1, $2, $3, $4, $5, $6)
        RETURNING id`,
		account.Email, account.PassHash, string(account.Role),
		account.IsActive, account.IsVerified, account.VerificationToken,
	).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, internal_errors.NewConflict("Email already registered")
		}
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	var role string
	err := row.Scan(&account.Id, &account.Email, &account.PassHash, &role,
		&account.IsActive, &account.IsVerified, &account.VerificationToken, &account.CreatedAt)
	if err != nil {
		return domain.Account{}, err
	}
	account.Role = domain.Role(role)
	return account, nil
}

func (s *Storage) accountBy(q Querier, where string, arg interface{}) (domain.Account, error) {
	row := q.QueryRow(fmt.Sprintf("SELECT %s FROM accounts WHERE %s", accountColumns, where), arg)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, &internal_errors.ErrorWithStatusCode{
				Kind:       internal_errors.NotFound,
				Message:    "Account not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Account{}, fmt.Errorf("failed to query account: %w", err)
	}
	return account, nil
}

func (s *Storage) updatePassword(q Querier, id domain.AccountId, passHash string) error {
	result, err := q.Exec("UPDATE accounts SET password_hash = $1 WHERE id = $2", passHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireAffected(result, "Account not found for password update")
}

func (s *Storage) deleteAccount(q Querier, id domain.AccountId) error {
	result, err := q.Exec("DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireAffected(result, "Account not found for deletion")
}

func (s *Storage) execOnAccount(query string, args ...interface{}) error {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireAffected(result, "Account not found")
}

func requireAffected(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NewNotFound(notFoundMsg)
	}
	return nil
}
