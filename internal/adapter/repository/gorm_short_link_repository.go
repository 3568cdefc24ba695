package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	apperrors "sharebin/pkg/errors"
)

type gormShortLinkRepository struct {
	db *gorm.DB
}

func NewGormShortLinkRepository(db *gorm.DB) repository.ShortLinkRepository {
	return &gormShortLinkRepository{db: db}
}

func (r *gormShortLinkRepository) Create(ctx context.Context, link *entity.ShortLink) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	if err := dbFrom(ctx, r.db).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("Short link code already in use")
		}
		return apperrors.Internal("Failed to create short link", err)
	}
	return nil
}

func (r *gormShortLinkRepository) GetByCode(ctx context.Context, code string) (*entity.ShortLink, error) {
	var link entity.ShortLink
	err := dbFrom(ctx, r.db).First(&link, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Short link", err)
		}
		return nil, apperrors.Internal("Failed to get short link", err)
	}
	return &link, nil
}

func (r *gormShortLinkRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.ShortLink{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("Failed to check short link code", err)
	}
	return count > 0, nil
}

func (r *gormShortLinkRepository) Delete(ctx context.Context, id string) error {
	if err := dbFrom(ctx, r.db).Delete(&entity.ShortLink{}, "id = ?", id).Error; err != nil {
		return apperrors.Internal("Failed to delete short link", err)
	}
	return nil
}
