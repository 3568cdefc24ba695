package database

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sharebin/internal/domain/entity"
)

// Open connects to the SQLite database at path, creating the parent
// directory when needed. The special path ":memory:" is passed through
// untouched (used by tests).
func Open(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}

	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.UserQuota{},
		&entity.File{},
		&entity.Preview{},
		&entity.ImageMetadata{},
		&entity.ShortLink{},
		&entity.AuditEvent{},
		&entity.AuditEntry{},
		&entity.Setting{},
	)
}
