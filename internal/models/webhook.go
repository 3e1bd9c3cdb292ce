package models

import (
	"time"

	"gorm.io/datatypes"
)

type Webhook struct {
	ID              string         `gorm:"type:varchar(36);primaryKey"`
	Name            string         `gorm:"type:varchar(255);not null"`
	TargetURL       string         `gorm:"type:text;not null"`
	Message         string         `gorm:"type:text;not null"`
	Leads           datatypes.JSON `gorm:"type:jsonb;not null"`
	Tags            datatypes.JSON `gorm:"type:jsonb"`
	ScheduleKind    string         `gorm:"type:varchar(20);not null"`
	ScheduledAt     *time.Time
	IntervalMinutes int            `gorm:"default:0;not null"`
	Status          string         `gorm:"type:varchar(50);not null;default:'pending';index"`
	RetryCount      int            `gorm:"default:0;not null"`
	MaxRetries      int            `gorm:"default:3;not null"`
	LastError       string         `gorm:"type:text"`
	ExecutedAt      *time.Time
	IsDeleted       bool           `gorm:"default:false;not null;index"`
	DeletedAt       *time.Time
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}
