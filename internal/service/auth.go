package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jotter-dev/jotter/internal/config"
	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/errors"
	"github.com/jotter-dev/jotter/internal/logger"
	"github.com/jotter-dev/jotter/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(creds domain.Credentials) (domain.AccountId, error)
	VerifyEmail(token string) (domain.AccountId, error)
	Login(creds domain.Credentials) (domain.Account, domain.TokenPair, error)
	Refresh(accountId domain.AccountId, presentedRefreshToken string) (domain.TokenPair, error)
	Logout(accountId domain.AccountId) error
	RequestPasswordReset(email domain.Email) error
	ConfirmPasswordReset(token string, newPassword domain.Password) (domain.AccountId, error)
}

type AuthStorage interface {
	SaveAccount(account domain.Account) (domain.AccountId, error)
	AccountByEmail(email domain.Email) (domain.Account, error)
	AccountById(id domain.AccountId) (domain.Account, error)
	ConsumeVerificationToken(token string) (domain.AccountId, error)
	UpdatePassword(id domain.AccountId, passHash string) error

	SaveRefreshSession(session domain.RefreshSession) error
	RotateRefreshSession(accountId domain.AccountId, presented string, next domain.RefreshSession) error
	DeleteRefreshSession(accountId domain.AccountId) error

	SaveResetTicket(ticket domain.PasswordResetTicket) error
	ConsumeResetTicket(token string) (domain.PasswordResetTicket, error)
}

type Email interface {
	Send(recipientEmail, subject, body string) error
	IsCorrect(email domain.Email) error
}

type Jwt interface {
	NewAccessToken(account *domain.Account) (string, error)
}

type Auth struct {
	storage AuthStorage
	email   Email
	jwt     Jwt
	cfg     *config.Config
}

func NewAuth(storage AuthStorage, email Email, jwt Jwt, cfg *config.Config) *Auth {
	return &Auth{
		storage: storage,
		email:   email,
		jwt:     jwt,
		cfg:     cfg,
	}
}

// Register creates an unverified account and dispatches the verification
// email. Dispatch is fire-and-forget: registration never blocks on, or
// fails because of, delivery.
func (a *Auth) Register(creds domain.Credentials) (domain.AccountId, error) {
	email := strings.ToLower(creds.Email)

	if err := a.email.IsCorrect(email); err != nil {
		return 0, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken := utils.GenerateOpaqueToken()
	id, err := a.storage.SaveAccount(domain.Account{
		Email:             email,
		PassHash:          string(passHash),
		Role:              domain.RoleUser,
		IsActive:          true,
		IsVerified:        false,
		VerificationToken: &verificationToken,
	})
	if err != nil {
		return 0, err
	}

	go a.sendVerificationEmail(email, verificationToken)

	return id, nil
}

// VerifyEmail consumes a single-use verification token. The token is
// cleared in the same statement that flips the flag, so replaying it
// fails.
func (a *Auth) VerifyEmail(token string) (domain.AccountId, error) {
	if token == "" {
		return 0, errors.NewInvalidOrExpiredToken()
	}
	return a.storage.ConsumeVerificationToken(token)
}

// Login checks credentials and account state, then issues a token pair.
// Unknown email and wrong password produce the same error so the two are
// indistinguishable. NotVerified and InactiveAccount share the status
// code with InvalidCredentials and differ only in message.
func (a *Auth) Login(creds domain.Credentials) (domain.Account, domain.TokenPair, error) {
	email := strings.ToLower(creds.Email)

	if err := a.email.IsCorrect(email); err != nil {
		return domain.Account{}, domain.TokenPair{}, err
	}

	account, err := a.storage.AccountByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.Account{}, domain.TokenPair{}, errors.NewInvalidCredentials()
		}
		return domain.Account{}, domain.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PassHash), []byte(creds.Password)); err != nil {
		return domain.Account{}, domain.TokenPair{}, errors.NewInvalidCredentials()
	}

	if !account.IsVerified {
		return domain.Account{}, domain.TokenPair{}, &errors.ErrorWithStatusCode{
			Kind:       errors.NotVerified,
			Message:    "Email address is not verified",
			StatusCode: http.StatusUnauthorized,
		}
	}
	if !account.IsActive {
		return domain.Account{}, domain.TokenPair{}, &errors.ErrorWithStatusCode{
			Kind:       errors.InactiveAccount,
			Message:    "Account is deactivated",
			StatusCode: http.StatusUnauthorized,
		}
	}

	pair, err := a.issueTokenPair(&account)
	if err != nil {
		return domain.Account{}, domain.TokenPair{}, err
	}
	return account, pair, nil
}

// Refresh rotates the token pair. The presented refresh token must be
// the live one; rotation is atomic in storage, so of two concurrent
// refreshes with the same token exactly one succeeds.
func (a *Auth) Refresh(accountId domain.AccountId, presentedRefreshToken string) (domain.TokenPair, error) {
	account, err := a.storage.AccountById(accountId)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.TokenPair{}, errors.NewInvalidOrExpiredToken()
		}
		return domain.TokenPair{}, err
	}
	if !account.IsActive {
		return domain.TokenPair{}, &errors.ErrorWithStatusCode{
			Kind:       errors.InactiveAccount,
			Message:    "Account is deactivated",
			StatusCode: http.StatusUnauthorized,
		}
	}

	next := domain.RefreshSession{
		AccountId: accountId,
		Token:     utils.GenerateOpaqueToken(),
		Expires:   time.Now().UTC().Add(a.cfg.RefreshTokenTTL()),
	}
	if err := a.storage.RotateRefreshSession(accountId, presentedRefreshToken, next); err != nil {
		return domain.TokenPair{}, err
	}

	accessToken, err := a.jwt.NewAccessToken(&account)
	if err != nil {
		logger.Log.Error("failed to create access token", "account_id", account.Id, "error", err)
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: accessToken, RefreshToken: next.Token}, nil
}

// Logout revokes the stored refresh session. Idempotent.
func (a *Auth) Logout(accountId domain.AccountId) error {
	return a.storage.DeleteRefreshSession(accountId)
}

// RequestPasswordReset creates a reset ticket and emails it. The caller
// always gets the same nil result whether or not the email exists, so
// the endpoint cannot be used to enumerate accounts.
func (a *Auth) RequestPasswordReset(email domain.Email) error {
	email = strings.ToLower(email)

	if err := a.email.IsCorrect(email); err != nil {
		return err
	}

	account, err := a.storage.AccountByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	ticket := domain.PasswordResetTicket{
		Token:     utils.GenerateOpaqueToken(),
		AccountId: account.Id,
		Expires:   time.Now().UTC().Add(a.cfg.ResetTicketTTL()),
	}
	if err := a.storage.SaveResetTicket(ticket); err != nil {
		return err
	}

	go a.sendResetEmail(email, ticket.Token)

	return nil
}

// ConfirmPasswordReset consumes the ticket exactly once and stores the
// new password hash. The live refresh session is revoked so a stolen
// session does not survive a password reset.
func (a *Auth) ConfirmPasswordReset(token string, newPassword domain.Password) (domain.AccountId, error) {
	ticket, err := a.storage.ConsumeResetTicket(token)
	if err != nil {
		return 0, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := a.storage.UpdatePassword(ticket.AccountId, string(passHash)); err != nil {
		return 0, err
	}

	if err := a.storage.DeleteRefreshSession(ticket.AccountId); err != nil {
		logger.Log.Warn("password reset succeeded but session revocation failed",
			"account_id", ticket.AccountId, "error", err)
	}

	return ticket.AccountId, nil
}

func (a *Auth) issueTokenPair(account *domain.Account) (domain.TokenPair, error) {
	accessToken, err := a.jwt.NewAccessToken(account)
	if err != nil {
		logger.Log.Error("failed to create access token", "account_id", account.Id, "error", err)
		return domain.TokenPair{}, err
	}

	session := domain.RefreshSession{
		AccountId: account.Id,
		Token:     utils.GenerateOpaqueToken(),
		Expires:   time.Now().UTC().Add(a.cfg.RefreshTokenTTL()),
	}
	if err := a.storage.SaveRefreshSession(session); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: session.Token}, nil
}

func (a *Auth) sendVerificationEmail(email domain.Email, token string) {
	body := fmt.Sprintf(`Hello,

Please verify your email address by opening the link below:

%s/verify-email?token=%s

If you did not request this, please ignore this email.
`, a.cfg.Public.BaseURL, token)

	if err := a.email.Send(email, "Verify your email", body); err != nil {
		logger.Log.Error("failed to send verification email", "error", err)
	}
}

func (a *Auth) sendResetEmail(email domain.Email, token string) {
	body := fmt.Sprintf(`Hello,

You requested a password reset. Open the link below to choose a new password:

%s/reset-password?token=%s

The link expires soon. If you did not request this, please ignore this email.
`, a.cfg.Public.BaseURL, token)

	if err := a.email.Send(email, "Reset your password", body); err != nil {
		logger.Log.Error("failed to send password reset email", "error", err)
	}
}
