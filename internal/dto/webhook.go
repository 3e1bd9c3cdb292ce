package dto

import (
	"time"
)

// LeadDTO is one recipient-like record carried inside a webhook payload.
type LeadDTO struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type WebhookCreateDTO struct {
	Name            string     `json:"name" validate:"required"`
	TargetURL       string     `json:"target_url" validate:"required,url"`
	Message         string     `json:"message" validate:"required"`
	Leads           []LeadDTO  `json:"leads" validate:"required,min=1,dive"`
	Tags            []string   `json:"tags,omitempty"`
	ScheduleKind    string     `json:"schedule_kind" validate:"required,oneof=once interval"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	IntervalMinutes int        `json:"interval_minutes,omitempty" validate:"gte=0"`
	MaxRetries      *int       `json:"max_retries,omitempty" validate:"omitempty,gte=0,lte=20"`
}

// WebhookUpdateDTO carries the mutable fields. MaxRetries is fixed at
// creation and absent here on purpose.
type WebhookUpdateDTO struct {
	Name            string     `json:"name" validate:"required"`
	TargetURL       string     `json:"target_url" validate:"required,url"`
	Message         string     `json:"message" validate:"required"`
	Leads           []LeadDTO  `json:"leads" validate:"required,min=1,dive"`
	Tags            []string   `json:"tags,omitempty"`
	ScheduleKind    string     `json:"schedule_kind" validate:"required,oneof=once interval"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	IntervalMinutes int        `json:"interval_minutes,omitempty" validate:"gte=0"`
}

type WebhookResponseDTO struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	TargetURL       string     `json:"target_url"`
	Message         string     `json:"message"`
	Leads           []LeadDTO  `json:"leads"`
	Tags            []string   `json:"tags"`
	ScheduleKind    string     `json:"schedule_kind"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	IntervalMinutes int        `json:"interval_minutes,omitempty"`
	Status          string     `json:"status"`
	RetryCount      int        `json:"retry_count"`
	MaxRetries      int        `json:"max_retries"`
	LastError       string     `json:"last_error,omitempty"`
	NextRunAt       *time.Time `json:"next_run_at,omitempty"`
	ExecutedAt      *time.Time `json:"executed_at,omitempty"`
	IsDeleted       bool       `json:"is_deleted"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ExecutionResultDTO is what a manual execution call returns synchronously.
type ExecutionResultDTO struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DurationMs int64  `json:"duration_ms"`
}

// BulkConfirmDTO carries the confirmation token the destructive bulk
// endpoints require.
type BulkConfirmDTO struct {
	Confirm string `json:"confirm" validate:"required"`
}

type BulkResultDTO struct {
	DeletedCount int64 `json:"deleted_count"`
}

type PurgeResultDTO struct {
	PurgedCount int64 `json:"purged_count"`
}
