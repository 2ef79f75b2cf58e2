package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jotter-dev/jotter/internal/api"
	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/middleware"
	"github.com/jotter-dev/jotter/internal/utils"
)

func accountResponse(account domain.Account) api.AccountResponse {
	return api.AccountResponse{
		Id:         account.Id,
		Email:      account.Email,
		Role:       string(account.Role),
		IsActive:   account.IsActive,
		IsVerified: account.IsVerified,
		CreatedAt:  account.CreatedAt,
	}
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePaging(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	accounts, err := h.admin.Accounts(middleware.GetUserFromContext(r), skip, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	responses := make([]api.AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = accountResponse(account)
	}
	writeJSON(w, http.StatusOK, api.AccountListResponse{Accounts: responses, Skip: skip, Limit: limit})
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "account id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := h.admin.Account(middleware.GetUserFromContext(r), int64(id))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse(account))
}

func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "account id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.ChangeRoleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	actor := middleware.GetUserFromContext(r)
	account, prevRole, err := h.admin.ChangeRole(actor, int64(id), domain.Role(body.Role))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAudit(r, domain.AuditRoleChange, domain.TargetAccount, targetRef(account.Id),
		map[string]any{"old_role": string(prevRole), "new_role": body.Role})

	writeJSON(w, http.StatusOK, accountResponse(account))
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "account id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.ChangeStatusRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	actor := middleware.GetUserFromContext(r)
	account, wasActive, err := h.admin.ChangeStatus(actor, int64(id), *body.IsActive)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAudit(r, domain.AuditStatusChange, domain.TargetAccount, targetRef(account.Id),
		map[string]any{"was_active": wasActive, "is_active": account.IsActive})

	writeJSON(w, http.StatusOK, accountResponse(account))
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "id"), "account id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.admin.DeleteAccount(middleware.GetUserFromContext(r), int64(id)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.recordAudit(r, domain.AuditDeleteAccount, domain.TargetAccount, targetRef(int64(id)), nil)

	w.WriteHeader(http.StatusNoContent)
}

// AuditLog is admin-only through routing; the recorder itself has no
// access policy.
func (h *Handler) AuditLog(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePaging(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if limit <= 0 || limit > h.cfg.Public.ListPageSize {
		limit = h.cfg.Public.ListPageSize
	}
	if skip < 0 {
		skip = 0
	}

	entries, err := h.audit.Entries(skip, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	total, err := h.audit.Count()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	responses := make([]api.AuditEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = api.AuditEntryResponse{
			Id:         entry.Id,
			ActorId:    entry.ActorId,
			Action:     entry.Action,
			TargetType: entry.TargetType,
			TargetId:   entry.TargetId,
			Ip:         entry.Ip,
			UserAgent:  entry.UserAgent,
			Payload:    entry.Payload,
			CreatedAt:  entry.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, api.AuditLogResponse{Entries: responses, Total: total, Skip: skip, Limit: limit})
}
