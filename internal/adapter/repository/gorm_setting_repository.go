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

type gormSettingRepository struct {
	db *gorm.DB
}

func NewGormSettingRepository(db *gorm.DB) repository.SettingRepository {
	return &gormSettingRepository{db: db}
}

func (r *gormSettingRepository) Get(ctx context.Context, key, kind string) (*entity.Setting, error) {
	var setting entity.Setting
	err := dbFrom(ctx, r.db).
		First(&setting, "key = ? AND kind = ?", key, kind).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Setting", err)
		}
		return nil, apperrors.Internal("Failed to get setting", err)
	}
	return &setting, nil
}

// Set upserts the row inside its own transaction.
func (r *gormSettingRepository) Set(ctx context.Context, setting *entity.Setting) error {
	setting.UpdatedAt = time.Now()
	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Save(setting).Error
	})
	if err != nil {
		return apperrors.Internal("Failed to save setting", err)
	}
	return nil
}

func (r *gormSettingRepository) List(ctx context.Context) ([]entity.Setting, error) {
	var settings []entity.Setting
	if err := dbFrom(ctx, r.db).Order("key").Find(&settings).Error; err != nil {
		return nil, apperrors.Internal("Failed to list settings", err)
	}
	return settings, nil
}
