package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/middleware/ratelimiter"
	"github.com/jotter-dev/jotter/internal/utils"
)

func RateLimit(rl *ratelimiter.KeyedLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actor := GetUserFromContext(r); actor != nil && actor.Role == domain.RoleAdmin { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.KeyedLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// IdentityByIP keys rate limits on the client address.
func IdentityByIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}

// IdentityByEmail keys rate limits on the email field of a JSON body,
// restoring the body so the handler can read it again. Applied to the
// endpoints that send mail, where per-IP limits alone would let one
// sender flood many mailboxes.
func IdentityByEmail(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", errors.New("failed to read request body")
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	var data struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", errors.New("invalid request body")
	}
	if data.Email == "" {
		return "", errors.New("email field is required")
	}
	return data.Email, nil
}
