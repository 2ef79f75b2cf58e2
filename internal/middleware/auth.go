package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/token"
	"github.com/jotter-dev/jotter/internal/utils"
)

// Key to store the user claims in the request context
type key int

const userClaimsKey key = 0

// extractAccessToken looks in the accessToken cookie first, then the
// Authorization header. Cookie clients are browsers; header clients are
// mobile and API consumers.
func extractAccessToken(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), true
	}
	return "", false
}

func accountFromClaims(claims *token.Claims) *domain.Account {
	return &domain.Account{
		Id:    claims.AccountId,
		Email: claims.Email,
		Role:  claims.Role,
	}
}

func Auth(jwtService token.JwtService, adminOnly bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessToken, ok := extractAccessToken(r)
			if !ok {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.DecodeAccessToken(accessToken)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			if adminOnly && claims.Role != domain.RoleAdmin {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, accountFromClaims(claims))
			next(w, r.WithContext(ctx))
		}
	}
}

// Helper functions for admin and regular auth
func AdminOnly(jwtService token.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, true)
}

func NeedAuth(jwtService token.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return Auth(jwtService, false)
}

// RefreshAuth identifies the actor from an access token whose expiry is
// ignored. The refresh endpoint is the only consumer: presenting a live
// refresh token is the actual proof there, the access token only names
// the account.
func RefreshAuth(jwtService token.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessToken, ok := extractAccessToken(r)
			if !ok {
				http.Error(w, "Please sign-in", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.DecodeAccessTokenIgnoreExpiry(accessToken)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, accountFromClaims(claims))
			next(w, r.WithContext(ctx))
		}
	}
}

// OptionalAuth populates the actor when a valid token is present and
// passes the request through anonymous otherwise. Used on endpoints
// whose policy differs for signed-in actors but accepts anyone.
func OptionalAuth(jwtService token.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			accessToken, ok := extractAccessToken(r)
			if !ok {
				next(w, r)
				return
			}

			claims, err := jwtService.DecodeAccessToken(accessToken)
			if err != nil {
				// A bad token on an optional route is treated as anonymous,
				// not rejected: expired sessions can still browse.
				next(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, accountFromClaims(claims))
			next(w, r.WithContext(ctx))
		}
	}
}

// ContextWithUser returns ctx carrying the actor, the same way the auth
// middleware stores it. Handler tests use it to simulate a signed-in
// request.
func ContextWithUser(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, userClaimsKey, account)
}

// GetUserFromContext retrieves the authenticated actor, or nil for
// anonymous requests.
func GetUserFromContext(r *http.Request) *domain.Account {
	user, ok := r.Context().Value(userClaimsKey).(*domain.Account)
	if !ok {
		return nil
	}
	return user
}
