package repository

import (
	"context"

	"gorm.io/gorm"

	"sharebin/internal/domain/repository"
)

type txKey struct{}

type gormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) repository.TxManager {
	return &gormTxManager{db: db}
}

// Do opens one transaction and threads it through the context so every
// repository call inside fn joins it.
func (m *gormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction carried by ctx, or the fallback handle.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
