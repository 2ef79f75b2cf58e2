package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jotter-dev/jotter/internal/config"
	"github.com/jotter-dev/jotter/internal/logger"
	"github.com/jotter-dev/jotter/internal/service"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth   service.AuthService
	note   service.NoteService
	admin  service.AdminService
	audit  service.AuditService
	health Pinger
	cfg    *config.Config
}

func New(auth service.AuthService, note service.NoteService, admin service.AdminService, audit service.AuditService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, note, admin, audit, health, cfg}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
