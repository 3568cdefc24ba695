package repository

import (
	"context"

	"sharebin/internal/domain/entity"
)

// AuditRepository appends audit events. Events are written inside
// whatever transaction the calling context carries; the repository never
// commits on its own.
type AuditRepository interface {
	Create(ctx context.Context, event *entity.AuditEvent) error
	ListByEntity(ctx context.Context, entityName, entityKey string) ([]*entity.AuditEvent, error)
}
