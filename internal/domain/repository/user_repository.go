package repository

import (
	"context"

	"sharebin/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByAPIToken(ctx context.Context, token string) (*entity.User, error)
	APITokenExists(ctx context.Context, token string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type QuotaRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserQuota, error)
	Upsert(ctx context.Context, quota *entity.UserQuota) error
}
