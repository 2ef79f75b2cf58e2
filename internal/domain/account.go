package domain

import (
	"net/http"
	"time"

	internal_errors "github.com/jotter-dev/jotter/internal/errors"
)

// Role is a closed set. Anything else is rejected at the boundary
// with InvalidRole instead of being stored as-is.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAdmin:
		return nil
	}
	return &internal_errors.ErrorWithStatusCode{
		Kind:       internal_errors.InvalidRole,
		Message:    "Unknown role: " + string(r),
		StatusCode: http.StatusBadRequest,
	}
}

type Account struct {
	Id                AccountId
	Email             Email
	PassHash          string
	Role              Role
	IsActive          bool
	IsVerified        bool
	VerificationToken *string // nil once the address is confirmed
	CreatedAt         time.Time
}

func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

type Credentials struct {
	Email    Email
	Password Password
}
