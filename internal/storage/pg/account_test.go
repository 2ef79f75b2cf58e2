package pg

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jotter-dev/jotter/internal/domain"
	internal_errors "github.com/jotter-dev/jotter/internal/errors"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAccountDuplicateEmail(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := s.SaveAccount(domain.Account{Email: "dup@x.com", Role: domain.RoleUser})

	require.Error(t, err)
	assert.True(t, internal_errors.IsKind(err, internal_errors.Conflict))
}

func TestConsumeVerificationToken(t *testing.T) {
	t.Run("match verifies and clears token", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("UPDATE accounts SET is_verified").
			WithArgs("tok").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

		id, err := s.ConsumeVerificationToken("tok")

		require.NoError(t, err)
		assert.Equal(t, domain.AccountId(9), id)
	})

	t.Run("no match", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery("UPDATE accounts SET is_verified").
			WithArgs("bad").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := s.ConsumeVerificationToken("bad")

		require.Error(t, err)
		assert.True(t, internal_errors.IsKind(err, internal_errors.InvalidOrExpiredToken))
	})
}

func TestUpdateRoleNotFound(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectExec("UPDATE accounts SET role").
		WithArgs("admin", domain.AccountId(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateRole(42, domain.RoleAdmin)

	require.Error(t, err)
	assert.True(t, internal_errors.IsNotFound(err))
}
