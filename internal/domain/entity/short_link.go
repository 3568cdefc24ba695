package entity

import (
	"time"
)

type ShortLink struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	TargetURL string    `json:"target_url" gorm:"not null"`
	Vanity    bool      `json:"vanity" gorm:"default:false"`
	UserID    *string   `json:"user_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
