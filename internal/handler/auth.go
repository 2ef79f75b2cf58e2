package handler

import (
	"net/http"

	"github.com/jotter-dev/jotter/internal/api"
	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/middleware"
	"github.com/jotter-dev/jotter/internal/middleware/metrics"
	"github.com/jotter-dev/jotter/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.auth.Register(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAuditAs(r, nil, domain.AuditRegister, domain.TargetAccount, targetRef(id), nil)

	writeJSON(w, http.StatusCreated, api.RegisterResponse{
		Message: "Registered. Check your inbox for the verification link",
		Id:      id,
	})
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var body api.VerifyEmailRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.auth.VerifyEmail(body.Token)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAuditAs(r, &id, domain.AuditVerifyEmail, domain.TargetAccount, targetRef(id), nil)

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Email verified. You can login now"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	account, pair, err := h.auth.Login(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAuthCookies(w, pair)
	metrics.TokenIssued("password")
	h.recordAuditAs(r, &account.Id, domain.AuditLogin, domain.TargetAccount, targetRef(account.Id), nil)

	writeJSON(w, http.StatusOK, api.TokenResponse{
		Message:      "You logged in",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r)
	if actor == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	// Body is optional for cookie clients.
	var body api.RefreshRequest
	_ = utils.Decode(r.Body, &body)

	presented := refreshTokenFrom(r, body.RefreshToken)
	if presented == "" {
		http.Error(w, "Missing refresh token", http.StatusUnauthorized)
		return
	}

	pair, err := h.auth.Refresh(actor.Id, presented)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAuthCookies(w, pair)
	metrics.TokenIssued("refresh")
	h.recordAudit(r, domain.AuditRefresh, domain.TargetAccount, targetRef(actor.Id), nil)

	writeJSON(w, http.StatusOK, api.TokenResponse{
		Message:      "Tokens refreshed",
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r)
	if actor == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	if err := h.auth.Logout(actor.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.clearAuthCookies(w)
	h.recordAudit(r, domain.AuditLogout, domain.TargetAccount, targetRef(actor.Id), nil)

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "You logged out"})
}

func (h *Handler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var body api.PasswordResetRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.auth.RequestPasswordReset(body.Email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// Same body whether or not the email exists.
	writeJSON(w, http.StatusAccepted, api.MessageResponse{
		Message: "If the email is registered, a reset link has been sent",
	})
}

func (h *Handler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var body api.PasswordResetConfirmRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.auth.ConfirmPasswordReset(body.Token, body.NewPassword)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAuditAs(r, &id, domain.AuditPasswordReset, domain.TargetAccount, targetRef(id), nil)

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Password updated. You can login now"})
}
