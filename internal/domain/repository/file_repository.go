package repository

import (
	"context"

	"sharebin/internal/domain/entity"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	GetByID(ctx context.Context, id string) (*entity.File, error)
	GetByShortURL(ctx context.Context, shortURL string) (*entity.File, error)
	ShortURLExists(ctx context.Context, shortURL string) (bool, error)
	LocationReferenced(ctx context.Context, location string) (bool, error)
	ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*entity.File, int64, error)
	ListAllOwned(ctx context.Context, userID string) ([]*entity.File, error)
	ListImages(ctx context.Context) ([]*entity.File, error)
	Search(ctx context.Context, userID, query string, limit, offset int) ([]*entity.File, int64, error)
	Delete(ctx context.Context, id string) error

	CreatePreview(ctx context.Context, preview *entity.Preview) error
	DeletePreview(ctx context.Context, fileID string) error
	UpsertImageMetadata(ctx context.Context, metadata *entity.ImageMetadata) error
	DeleteImageMetadata(ctx context.Context, fileID string) error
}
