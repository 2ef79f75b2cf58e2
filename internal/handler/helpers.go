package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/middleware"
	"github.com/jotter-dev/jotter/internal/utils"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

// parsePaging reads skip/limit query params, leaving zero values for the
// service layer to default and clamp.
func parsePaging(r *http.Request) (skip, limit int, err error) {
	if raw := r.URL.Query().Get("skip"); raw != "" {
		if skip, err = parseIntParam(raw, "skip"); err != nil {
			return
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = parseIntParam(raw, "limit"); err != nil {
			return
		}
	}
	return
}

func (h *Handler) setAuthCookies(w http.ResponseWriter, pair domain.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    pair.AccessToken,
		MaxAge:   int(h.cfg.AccessTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Path:     "/v1/auth",
		Name:     "refreshToken",
		Value:    pair.RefreshToken,
		MaxAge:   int(h.cfg.RefreshTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Path:     "/v1/auth",
		Name:     "refreshToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// refreshTokenFrom reads the refresh token from the cookie, falling back
// to the request body value for non-cookie clients.
func refreshTokenFrom(r *http.Request, bodyToken string) string {
	if cookie, err := r.Cookie("refreshToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return bodyToken
}

// recordAudit appends one audit entry scoped to the current request.
// Best-effort by contract of the audit service.
func (h *Handler) recordAudit(r *http.Request, action, targetType string, targetId *int64, payload map[string]any) {
	entry := domain.AuditEntry{
		Action:     action,
		TargetType: targetType,
		TargetId:   targetId,
		UserAgent:  r.UserAgent(),
		Payload:    payload,
	}
	if actor := middleware.GetUserFromContext(r); actor != nil {
		id := actor.Id
		entry.ActorId = &id
	}
	if ip, err := utils.GetIP(r); err == nil {
		entry.Ip = ip
	}
	h.audit.Record(entry)
}

// recordAuditAs is recordAudit with an explicit actor, for endpoints
// that authenticate inside the handler instead of via middleware.
func (h *Handler) recordAuditAs(r *http.Request, actorId *domain.AccountId, action, targetType string, targetId *int64, payload map[string]any) {
	entry := domain.AuditEntry{
		ActorId:    actorId,
		Action:     action,
		TargetType: targetType,
		TargetId:   targetId,
		UserAgent:  r.UserAgent(),
		Payload:    payload,
	}
	if ip, err := utils.GetIP(r); err == nil {
		entry.Ip = ip
	}
	h.audit.Record(entry)
}

func targetRef(id int64) *int64 {
	return &id
}
