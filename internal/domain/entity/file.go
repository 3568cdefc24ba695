package entity

import (
	"time"
)

type File struct {
	ID               string  `json:"id" gorm:"primaryKey"`
	Filename         string  `json:"filename" gorm:"not null"`
	RelativeLocation string  `json:"-" gorm:"uniqueIndex;not null"`
	ShortURL         *string `json:"short_url,omitempty" gorm:"uniqueIndex"`
	MimeType         string  `json:"mime_type"`
	Size             int64   `json:"size" gorm:"not null"`
	Public           bool    `json:"public" gorm:"default:false"`
	// Owner may be deleted while the file stays behind.
	UserID    *string   `json:"user_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`

	Preview  *Preview       `json:"preview,omitempty" gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
	Metadata *ImageMetadata `json:"metadata,omitempty" gorm:"foreignKey:FileID;constraint:OnDelete:CASCADE"`
}

// Preview is the downscaled raster rendition of a File. It shares the
// parent's primary key and never outlives it.
type Preview struct {
	FileID           string `json:"file_id" gorm:"primaryKey"`
	Filename         string `json:"filename"`
	RelativeLocation string `json:"-" gorm:"uniqueIndex;not null"`
	MimeType         string `json:"mime_type"`
	Size             int64  `json:"size"`
}

// ImageMetadata is probed best-effort after upload and may be absent.
type ImageMetadata struct {
	FileID      string `json:"file_id" gorm:"primaryKey"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ColorSpace  string `json:"color_space"`
	Compression string `json:"compression"`
}
