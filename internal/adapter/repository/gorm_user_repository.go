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

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) repository.UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *entity.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if err := dbFrom(ctx, r.db).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("Username already taken")
		}
		return apperrors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := dbFrom(ctx, r.db).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to get user", err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := dbFrom(ctx, r.db).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to get user", err)
	}
	return &user, nil
}

func (r *gormUserRepository) GetByAPIToken(ctx context.Context, token string) (*entity.User, error) {
	var user entity.User
	err := dbFrom(ctx, r.db).First(&user, "api_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to get user", err)
	}
	return &user, nil
}

func (r *gormUserRepository) APITokenExists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.User{}).
		Where("api_token = ?", token).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("Failed to check API token", err)
	}
	return count > 0, nil
}

func (r *gormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := dbFrom(ctx, r.db).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, apperrors.Internal("Failed to count users", err)
	}
	return count, nil
}

type gormQuotaRepository struct {
	db *gorm.DB
}

func NewGormQuotaRepository(db *gorm.DB) repository.QuotaRepository {
	return &gormQuotaRepository{db: db}
}

func (r *gormQuotaRepository) Get(ctx context.Context, userID string) (*entity.UserQuota, error) {
	var quota entity.UserQuota
	err := dbFrom(ctx, r.db).First(&quota, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Quota", err)
		}
		return nil, apperrors.Internal("Failed to get quota", err)
	}
	return &quota, nil
}

func (r *gormQuotaRepository) Upsert(ctx context.Context, quota *entity.UserQuota) error {
	quota.UpdatedAt = time.Now()
	if err := dbFrom(ctx, r.db).Save(quota).Error; err != nil {
		return apperrors.Internal("Failed to save quota", err)
	}
	return nil
}
