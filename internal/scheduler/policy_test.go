package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/croakcroak22/webhook/internal/config"
	"github.com/croakcroak22/webhook/internal/delivery"
	"github.com/croakcroak22/webhook/internal/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name           string
		retryCount     int
		maxRetries     int
		outcome        delivery.Outcome
		wantStatus     config.WebhookStatus
		wantRetryCount int
		wantErrEmpty   bool
	}{
		{
			name:           "success keeps retry count and clears error",
			retryCount:     2,
			maxRetries:     3,
			outcome:        delivery.Outcome{Succeeded: true, HTTPStatus: 200},
			wantStatus:     config.StatusSent,
			wantRetryCount: 2,
			wantErrEmpty:   true,
		},
		{
			name:           "first failure stays pending",
			retryCount:     0,
			maxRetries:     3,
			outcome:        delivery.Outcome{TransportError: "dial tcp: connection refused"},
			wantStatus:     config.StatusPending,
			wantRetryCount: 1,
		},
		{
			name:           "failure at the retry bound is terminal",
			retryCount:     2,
			maxRetries:     3,
			outcome:        delivery.Outcome{HTTPStatus: 503},
			wantStatus:     config.StatusFailed,
			wantRetryCount: 3,
		},
		{
			name:           "zero retry budget still gets one attempt but fails terminally",
			retryCount:     0,
			maxRetries:     0,
			outcome:        delivery.Outcome{TransportError: "timeout"},
			wantStatus:     config.StatusFailed,
			wantRetryCount: 0,
		},
		{
			name:           "retry count never exceeds the bound",
			retryCount:     5,
			maxRetries:     5,
			outcome:        delivery.Outcome{HTTPStatus: 500},
			wantStatus:     config.StatusFailed,
			wantRetryCount: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wh := &models.Webhook{RetryCount: tt.retryCount, MaxRetries: tt.maxRetries}

			d := Decide(wh, tt.outcome)

			assert.Equal(t, tt.wantStatus, d.NextStatus)
			assert.Equal(t, tt.wantRetryCount, d.NextRetryCount)
			if tt.wantErrEmpty {
				assert.Empty(t, d.ErrorMessage)
			} else {
				assert.NotEmpty(t, d.ErrorMessage)
			}

			// The retry bound must hold after every decision.
			assert.LessOrEqual(t, d.NextRetryCount, wh.MaxRetries)
			assert.GreaterOrEqual(t, d.NextRetryCount, 0)
		})
	}
}

func TestFailureMessage(t *testing.T) {
	transport := FailureMessage(delivery.Outcome{TransportError: "dial tcp: i/o timeout"})
	assert.Equal(t, "connection error: dial tcp: i/o timeout", transport)

	httpErr := FailureMessage(delivery.Outcome{HTTPStatus: 503})
	assert.Equal(t, "HTTP 503: Service Unavailable", httpErr)
}
