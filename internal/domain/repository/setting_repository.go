package repository

import (
	"context"

	"sharebin/internal/domain/entity"
)

type SettingRepository interface {
	// Get returns the setting only when both key and kind match.
	Get(ctx context.Context, key, kind string) (*entity.Setting, error)
	Set(ctx context.Context, setting *entity.Setting) error
	List(ctx context.Context) ([]entity.Setting, error)
}
