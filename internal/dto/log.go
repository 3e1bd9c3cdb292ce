package dto

import (
	"encoding/json"
	"time"
)

type LogResponseDTO struct {
	ID           string          `json:"id"`
	WebhookID    string          `json:"webhook_id"`
	Timestamp    time.Time       `json:"timestamp"`
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	Response     json.RawMessage `json:"response,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	DurationMs   int64           `json:"duration_ms"`

	// Populated only by the cross-webhook listing.
	WebhookName string `json:"webhook_name,omitempty"`
	WebhookURL  string `json:"webhook_url,omitempty"`
}

type LogPageDTO struct {
	Data       []LogResponseDTO `json:"data"`
	Pagination PaginationDTO    `json:"pagination"`
}

type PaginationDTO struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
