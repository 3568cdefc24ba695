package entity

import (
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Role      string    `json:"role" gorm:"default:user"`
	APIToken  string    `json:"-" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// UserQuota holds the running space totals for a user. The totals are
// always recomputed from the file rows, never incremented in place.
type UserQuota struct {
	UserID           string    `json:"user_id" gorm:"primaryKey"`
	SpaceUsed        int64     `json:"space_used"`
	PreviewSpaceUsed int64     `json:"preview_space_used"`
	MaxFileSize      *int64    `json:"max_file_size,omitempty"`
	MaxStorage       *int64    `json:"max_storage,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}
