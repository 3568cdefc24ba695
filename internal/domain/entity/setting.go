package entity

import (
	"time"
)

// Setting value kinds. Reads are filtered by both key and kind so a row
// whose kind changed under an older binary falls back to the default
// instead of being misparsed.
const (
	SettingKindString = "string"
	SettingKindBool   = "bool"
	SettingKindInt    = "int"
	SettingKindLong   = "long"
)

type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Kind      string    `json:"kind" gorm:"not null"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
