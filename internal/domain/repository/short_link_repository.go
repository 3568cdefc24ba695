package repository

import (
	"context"

	"sharebin/internal/domain/entity"
)

type ShortLinkRepository interface {
	Create(ctx context.Context, link *entity.ShortLink) error
	GetByCode(ctx context.Context, code string) (*entity.ShortLink, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, id string) error
}
