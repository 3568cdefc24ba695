package repository

import (
	"context"

	"gorm.io/gorm"

	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	apperrors "sharebin/pkg/errors"
)

type gormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) repository.AuditRepository {
	return &gormAuditRepository{db: db}
}

func (r *gormAuditRepository) Create(ctx context.Context, event *entity.AuditEvent) error {
	if err := dbFrom(ctx, r.db).Create(event).Error; err != nil {
		return apperrors.Internal("Failed to write audit event", err)
	}
	return nil
}

func (r *gormAuditRepository) ListByEntity(ctx context.Context, entityName, entityKey string) ([]*entity.AuditEvent, error) {
	var events []*entity.AuditEvent
	err := dbFrom(ctx, r.db).Preload("Entries").
		Where("entity_name = ? AND entity_key = ?", entityName, entityKey).
		Order("id").
		Find(&events).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to list audit events", err)
	}
	return events, nil
}
