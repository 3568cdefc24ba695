package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	apperrors "sharebin/pkg/errors"
)

type gormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) repository.FileRepository {
	return &gormFileRepository{db: db}
}

func (r *gormFileRepository) Create(ctx context.Context, file *entity.File) error {
	if err := dbFrom(ctx, r.db).Create(file).Error; err != nil {
		return apperrors.Internal("Failed to create file record", err)
	}
	return nil
}

func (r *gormFileRepository) GetByID(ctx context.Context, id string) (*entity.File, error) {
	var file entity.File
	err := dbFrom(ctx, r.db).
		Preload("Preview").
		Preload("Metadata").
		First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("File", err)
		}
		return nil, apperrors.Internal("Failed to get file", err)
	}
	return &file, nil
}

func (r *gormFileRepository) GetByShortURL(ctx context.Context, shortURL string) (*entity.File, error) {
	var file entity.File
	err := dbFrom(ctx, r.db).
		Preload("Preview").
		Preload("Metadata").
		First(&file, "short_url = ?", shortURL).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("File", err)
		}
		return nil, apperrors.Internal("Failed to get file", err)
	}
	return &file, nil
}

func (r *gormFileRepository) ShortURLExists(ctx context.Context, shortURL string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.File{}).
		Where("short_url = ?", shortURL).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("Failed to check short URL", err)
	}
	return count > 0, nil
}

func (r *gormFileRepository) LocationReferenced(ctx context.Context, location string) (bool, error) {
	db := dbFrom(ctx, r.db)

	var count int64
	if err := db.Model(&entity.File{}).Where("relative_location = ?", location).Count(&count).Error; err != nil {
		return false, apperrors.Internal("Failed to check file location", err)
	}
	if count > 0 {
		return true, nil
	}

	if err := db.Model(&entity.Preview{}).Where("relative_location = ?", location).Count(&count).Error; err != nil {
		return false, apperrors.Internal("Failed to check preview location", err)
	}
	return count > 0, nil
}

func (r *gormFileRepository) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*entity.File, int64, error) {
	db := dbFrom(ctx, r.db)

	var total int64
	if err := db.Model(&entity.File{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to count files", err)
	}

	var files []*entity.File
	err := db.Preload("Preview").Preload("Metadata").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&files).Error
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list files", err)
	}
	return files, total, nil
}

func (r *gormFileRepository) ListAllOwned(ctx context.Context, userID string) ([]*entity.File, error) {
	var files []*entity.File
	err := dbFrom(ctx, r.db).Preload("Preview").
		Where("user_id = ?", userID).
		Find(&files).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to list files", err)
	}
	return files, nil
}

func (r *gormFileRepository) ListImages(ctx context.Context) ([]*entity.File, error) {
	var files []*entity.File
	err := dbFrom(ctx, r.db).
		Where("mime_type LIKE ?", "image/%").
		Find(&files).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to list image files", err)
	}
	return files, nil
}

func (r *gormFileRepository) Search(ctx context.Context, userID, query string, limit, offset int) ([]*entity.File, int64, error) {
	db := dbFrom(ctx, r.db)
	pattern := "%" + strings.ReplaceAll(query, "%", "\\%") + "%"

	base := db.Model(&entity.File{}).
		Where("user_id = ?", userID).
		Where("filename LIKE ? OR mime_type LIKE ?", pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to count search results", err)
	}

	var files []*entity.File
	err := db.Preload("Preview").
		Where("user_id = ?", userID).
		Where("filename LIKE ? OR mime_type LIKE ?", pattern, pattern).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&files).Error
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to search files", err)
	}
	return files, total, nil
}

func (r *gormFileRepository) Delete(ctx context.Context, id string) error {
	if err := dbFrom(ctx, r.db).Delete(&entity.File{}, "id = ?", id).Error; err != nil {
		return apperrors.Internal("Failed to delete file record", err)
	}
	return nil
}

func (r *gormFileRepository) CreatePreview(ctx context.Context, preview *entity.Preview) error {
	if err := dbFrom(ctx, r.db).Create(preview).Error; err != nil {
		return apperrors.Internal("Failed to create preview record", err)
	}
	return nil
}

func (r *gormFileRepository) DeletePreview(ctx context.Context, fileID string) error {
	if err := dbFrom(ctx, r.db).Delete(&entity.Preview{}, "file_id = ?", fileID).Error; err != nil {
		return apperrors.Internal("Failed to delete preview record", err)
	}
	return nil
}

func (r *gormFileRepository) UpsertImageMetadata(ctx context.Context, metadata *entity.ImageMetadata) error {
	if err := dbFrom(ctx, r.db).Save(metadata).Error; err != nil {
		return apperrors.Internal("Failed to save image metadata", err)
	}
	return nil
}

func (r *gormFileRepository) DeleteImageMetadata(ctx context.Context, fileID string) error {
	if err := dbFrom(ctx, r.db).Delete(&entity.ImageMetadata{}, "file_id = ?", fileID).Error; err != nil {
		return apperrors.Internal("Failed to delete image metadata", err)
	}
	return nil
}
