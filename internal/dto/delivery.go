package dto

import (
	"encoding/json"
	"time"
)

// DeliveryPayload is the JSON body posted to the target URL on each attempt.
type DeliveryPayload struct {
	Name        string          `json:"name"`
	Message     string          `json:"message"`
	Leads       json.RawMessage `json:"leads"`
	Tags        json.RawMessage `json:"tags"`
	ScheduledAt *time.Time      `json:"scheduledAt,omitempty"`
	ExecutedAt  time.Time       `json:"executedAt"`
	IsManual    bool            `json:"isManual"`
}
