package errors

import "net/http"

// Kind tags an expected, caller-recoverable condition so services and
// handlers can branch without matching on message text.
type Kind string

const (
	InvalidCredentials    Kind = "invalid_credentials"
	NotVerified           Kind = "not_verified"
	InactiveAccount       Kind = "inactive_account"
	InvalidOrExpiredToken Kind = "invalid_or_expired_token"
	InvalidRole           Kind = "invalid_role"
	InvalidVisibility     Kind = "invalid_visibility"
	NotFound              Kind = "not_found"
	Forbidden             Kind = "forbidden"
	Conflict              Kind = "conflict"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Kind       Kind
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// KindOf returns the Kind of err, or "" for unexpected errors.
func KindOf(err error) Kind {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func IsNotFound(err error) bool {
	return IsKind(err, NotFound)
}

func NewNotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Kind: NotFound, Message: message, StatusCode: http.StatusNotFound}
}

func NewForbidden(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Kind: Forbidden, Message: message, StatusCode: http.StatusForbidden}
}

func NewConflict(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Kind: Conflict, Message: message, StatusCode: http.StatusConflict}
}

// NewInvalidCredentials is shared by the "no such account" and "wrong
// password" paths so the two are indistinguishable to the caller.
func NewInvalidCredentials() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Kind: InvalidCredentials, Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
}

func NewInvalidOrExpiredToken() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Kind: InvalidOrExpiredToken, Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
}
