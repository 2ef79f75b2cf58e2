package token

import (
	"testing"
	"time"

	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secretKey = "testJwtKey"
var account = domain.Account{Id: 1, Email: "test@mail.ru", Role: domain.RoleUser}

func TestDecodeAccessTokenCorrect(t *testing.T) {
	jwt := New(secretKey, 10*time.Second)
	tokenStr, err := jwt.NewAccessToken(&account)
	require.NoError(t, err)

	claims, err := jwt.DecodeAccessToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountId(1), claims.AccountId)
	assert.Equal(t, "test@mail.ru", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestDecodeAccessTokenAdminRole(t *testing.T) {
	jwt := New(secretKey, 10*time.Second)
	admin := domain.Account{Id: 2, Email: "admin@mail.ru", Role: domain.RoleAdmin}
	tokenStr, err := jwt.NewAccessToken(&admin)
	require.NoError(t, err)

	claims, err := jwt.DecodeAccessToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestDecodeAccessTokenExpired(t *testing.T) {
	jwt := New(secretKey, -time.Second)
	tokenStr, err := jwt.NewAccessToken(&account)
	require.NoError(t, err)

	_, err = jwt.DecodeAccessToken(tokenStr)
	assert.Error(t, err, "expired token must not decode")
}

func TestDecodeAccessTokenInvalidSecretKey(t *testing.T) {
	tokenStr, err := New(secretKey, 10*time.Second).NewAccessToken(&account)
	require.NoError(t, err)

	_, err = New("invalidSecret", 10*time.Second).DecodeAccessToken(tokenStr)
	assert.Error(t, err, "token signed with another key must not decode")
}

func TestDecodeAccessTokenIgnoreExpiry(t *testing.T) {
	jwt := New(secretKey, -time.Second)
	tokenStr, err := jwt.NewAccessToken(&account)
	require.NoError(t, err)

	claims, err := jwt.DecodeAccessTokenIgnoreExpiry(tokenStr)
	require.NoError(t, err, "expired token still identifies the account")
	assert.Equal(t, account.Id, claims.AccountId)

	_, err = New("invalidSecret", time.Hour).DecodeAccessTokenIgnoreExpiry(tokenStr)
	assert.Error(t, err, "signature is still verified")
}
