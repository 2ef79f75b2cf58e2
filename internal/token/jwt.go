package token

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jotter-dev/jotter/internal/domain"
	internal_errors "github.com/jotter-dev/jotter/internal/errors"
	"github.com/jotter-dev/jotter/internal/logger"
)

// JwtService mints and validates stateless access tokens. Verification
// checks signature and expiry only; access tokens cannot be revoked
// individually before expiry.
type JwtService interface {
	NewAccessToken(account *domain.Account) (string, error)
	DecodeAccessToken(jwtStr string) (*Claims, error)
	DecodeAccessTokenIgnoreExpiry(jwtStr string) (*Claims, error)
}

// Claims is the decoded payload of an access token.
type Claims struct {
	AccountId domain.AccountId
	Email     domain.Email
	Role      domain.Role
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewAccessToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{}
	claims["uid"] = account.Id
	claims["email"] = account.Email
	claims["role"] = string(account.Role)
	claims["exp"] = time.Now().Add(j.ttl).Unix()
	claims["jti"] = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign access token", "error", err)
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

func (j *Jwt) DecodeAccessToken(jwtStr string) (*Claims, error) {
	return j.decode(jwtStr)
}

// DecodeAccessTokenIgnoreExpiry verifies the signature but skips claim
// validation. Used on the refresh endpoint, where an expired access
// token still identifies the account; everything else must use
// DecodeAccessToken.
func (j *Jwt) DecodeAccessTokenIgnoreExpiry(jwtStr string) (*Claims, error) {
	return j.decode(jwtStr, jwt.WithoutClaimsValidation())
}

func (j *Jwt) decode(jwtStr string, opts ...jwt.ParserOption) (*Claims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{
				Kind:       internal_errors.InvalidOrExpiredToken,
				Message:    fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]),
				StatusCode: http.StatusUnauthorized,
			}
		}
		return []byte(j.secretKey), nil
	}, opts...)
	if err != nil {
		return nil, internal_errors.NewInvalidOrExpiredToken()
	}
	if !token.Valid {
		return nil, internal_errors.NewInvalidOrExpiredToken()
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.NewInvalidOrExpiredToken()
	}

	uidFloat, ok := mapClaims["uid"].(float64)
	if !ok {
		return nil, internal_errors.NewInvalidOrExpiredToken()
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, internal_errors.NewInvalidOrExpiredToken()
	}
	roleStr, ok := mapClaims["role"].(string)
	if !ok {
		return nil, internal_errors.NewInvalidOrExpiredToken()
	}
	role := domain.Role(roleStr)
	if err := role.Validate(); err != nil {
		return nil, internal_errors.NewInvalidOrExpiredToken()
	}

	return &Claims{
		AccountId: domain.AccountId(uidFloat),
		Email:     email,
		Role:      role,
	}, nil
}
