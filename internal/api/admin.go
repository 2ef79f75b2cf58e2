package api

import "time"

// Request DTOs

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type ChangeStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// Response DTOs

type AccountResponse struct {
	Id         int64     `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}

type AuditEntryResponse struct {
	Id         int64          `json:"id"`
	ActorId    *int64         `json:"actor_id"`
	Action     string         `json:"action"`
	TargetType string         `json:"target_type,omitempty"`
	TargetId   *int64         `json:"target_id,omitempty"`
	Ip         string         `json:"ip,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type AuditLogResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
	Total   int64                `json:"total"`
	Skip    int                  `json:"skip"`
	Limit   int                  `json:"limit"`
}
