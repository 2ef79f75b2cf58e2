package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/middleware/ratelimiter"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGlobalRateLimit(t *testing.T) {
	t.Run("shares one bucket across clients", func(t *testing.T) {
		rl := ratelimiter.New(0.001, 2, time.Hour)
		defer rl.Stop()
		handler := GlobalRateLimit(rl)(okHandler())

		for i, addr := range []string{"1.1.1.1:1", "2.2.2.2:2"} {
			req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
			req.RemoteAddr = addr
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code, "request %d", i)
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.RemoteAddr = "3.3.3.3:3"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})

	t.Run("admin bypasses the limit", func(t *testing.T) {
		rl := ratelimiter.New(0.001, 1, time.Hour)
		defer rl.Stop()
		handler := GlobalRateLimit(rl)(okHandler())

		admin := &domain.Account{Id: 1, Role: domain.RoleAdmin}
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
			req = req.WithContext(ContextWithUser(req.Context(), admin))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code, "request %d", i)
		}
	})
}
