package domain

import "time"

// Audit actions recorded by the security service.
const (
	AuditUserCreated  = "user_created"
	AuditUserUpdated  = "user_updated"
	AuditLoginSuccess = "login_success"
	AuditLoginFailure = "login_failure"
)

// AuditEvent records a single security-relevant action. Events for the same
// username are processed in order by the audit dispatcher.
type AuditEvent struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Action    string    `json:"action" bson:"action"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
