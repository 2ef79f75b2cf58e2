package domain

import "time"

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshSession is the server-side record backing a refresh token.
// One live session per account: issuing a new pair overwrites the row.
type RefreshSession struct {
	AccountId AccountId
	Token     string
	Expires   time.Time
}

// PasswordResetTicket is a single-use token with a short TTL.
// Consumed (deleted) on successful reset or discarded on expired lookup.
type PasswordResetTicket struct {
	Token     string
	AccountId AccountId
	Expires   time.Time
}
