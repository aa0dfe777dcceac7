package ports

import (
	"context"

	"github.com/learning/securedapp/internal/core/domain"
)

// AuditRepository appends audit events to the trail.
type AuditRepository interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
}
