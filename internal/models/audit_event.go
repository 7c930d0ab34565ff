package models

import "time"

// Audit event types.
const (
	EventSignup      = "SIGNUP"
	EventLogin       = "LOGIN"
	EventLoginFailed = "LOGIN_FAILED"
	EventRefresh     = "REFRESH"
)

// AuditEvent is a single entry of the account audit trail.
type AuditEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Type       string    `json:"type"` // SIGNUP | LOGIN | LOGIN_FAILED | REFRESH
	Username   string    `json:"username"`
	Metadata   any       `json:"metadata,omitempty"`
}
