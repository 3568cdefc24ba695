package entity

import (
	"time"
)

const (
	AuditKindDelete = "delete"
	AuditKindInsert = "insert"
)

// AuditEvent is one append-only record of a row being inserted or
// deleted, with its captured field values as child entries.
type AuditEvent struct {
	ID         uint         `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind       string       `json:"kind" gorm:"not null;index"`
	EntityName string       `json:"entity_name" gorm:"not null;index"`
	EntityKey  string       `json:"entity_key" gorm:"not null"`
	ActorID    string       `json:"actor_id"`
	CreatedAt  time.Time    `json:"created_at"`
	Entries    []AuditEntry `json:"entries" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

type AuditEntry struct {
	ID      uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	EventID uint   `json:"event_id" gorm:"index;not null"`
	Name    string `json:"name" gorm:"not null"`
	Value   string `json:"value"`
}
