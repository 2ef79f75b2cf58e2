package domain

import "time"

// AuditEntry is one immutable row in the audit log. ActorId is nil for
// system-initiated actions. Payload is opaque to the recorder.
type AuditEntry struct {
	Id         AuditId
	ActorId    *AccountId
	Action     string
	TargetType string
	TargetId   *int64
	Ip         string
	UserAgent  string
	Payload    map[string]any
	CreatedAt  time.Time
}

// Audit action tags.
const (
	AuditRegister      = "register"
	AuditVerifyEmail   = "verify_email"
	AuditLogin         = "login"
	AuditRefresh       = "refresh_token"
	AuditLogout        = "logout"
	AuditPasswordReset = "password_reset"
	AuditCreateNote    = "create_note"
	AuditUpdateNote    = "update_note"
	AuditDeleteNote    = "delete_note"
	AuditRoleChange    = "role_change"
	AuditStatusChange  = "status_change"
	AuditDeleteAccount = "delete_account"
)

// Audit target types.
const (
	TargetAccount = "account"
	TargetNote    = "note"
)
