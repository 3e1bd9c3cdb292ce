package config

type WebhookStatus string

var (
	StatusPending   WebhookStatus = "pending"
	StatusExecuting WebhookStatus = "executing"
	StatusSent      WebhookStatus = "sent"
	StatusFailed    WebhookStatus = "failed"
	StatusCancelled WebhookStatus = "cancelled"

	LogStatusSuccess = "success"
	LogStatusError   = "error"
	LogStatusInfo    = "info"

	ScheduleOnce     = "once"
	ScheduleInterval = "interval"

	AllowedScheduleKinds = []string{ScheduleOnce, ScheduleInterval}

	// Confirmation tokens for the destructive bulk operations.
	ConfirmDeleteAll  = "DELETE ALL WEBHOOKS"
	ConfirmEmptyTrash = "EMPTY TRASH"
)

const DefaultMaxRetries = 3
