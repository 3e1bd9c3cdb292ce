package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookLog is append-only: rows are created by the executor (one per
// delivery attempt) or by administrative actions, never updated, and only
// deleted when the owning webhook is purged.
type WebhookLog struct {
	ID           string         `gorm:"type:varchar(36);primaryKey"`
	WebhookID    string         `gorm:"type:varchar(36);not null;index"`
	Timestamp    time.Time      `gorm:"not null;index"`
	Status       string         `gorm:"type:varchar(20);not null"`
	Message      string         `gorm:"type:text;not null"`
	Response     datatypes.JSON `gorm:"type:jsonb"`
	ErrorMessage string         `gorm:"type:text"`
	DurationMs   int64          `gorm:"default:0;not null"`
}

// WebhookLogDetail is the cross-webhook listing projection: a log entry
// joined with its owner's name and target URL.
type WebhookLogDetail struct {
	WebhookLog
	WebhookName string
	WebhookURL  string
}
