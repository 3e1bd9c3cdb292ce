package scheduler

import (
	"fmt"
	"net/http"

	"github.com/croakcroak22/webhook/internal/config"
	"github.com/croakcroak22/webhook/internal/delivery"
	"github.com/croakcroak22/webhook/internal/models"
)

// Decision is the retry policy's verdict for one delivery attempt.
type Decision struct {
	NextStatus     config.WebhookStatus
	NextRetryCount int
	ErrorMessage   string
}

// Decide maps (current webhook, delivery outcome) to the next persisted
// state. It is a pure function.
//
// Success keeps the retry counter and clears the error. Failure increments
// the counter; once it reaches MaxRetries the webhook is terminally failed,
// otherwise it goes back to pending and stays eligible for the next tick.
// The counter is capped at MaxRetries so a webhook created with
// MaxRetries=0 still gets its single attempt without ever exceeding the
// bound.
func Decide(wh *models.Webhook, out delivery.Outcome) Decision {
	if out.Succeeded {
		return Decision{
			NextStatus:     config.StatusSent,
			NextRetryCount: wh.RetryCount,
		}
	}

	next := wh.RetryCount + 1
	msg := FailureMessage(out)

	if next >= wh.MaxRetries {
		return Decision{
			NextStatus:     config.StatusFailed,
			NextRetryCount: min(next, wh.MaxRetries),
			ErrorMessage:   msg,
		}
	}

	return Decision{
		NextStatus:     config.StatusPending,
		NextRetryCount: next,
		ErrorMessage:   msg,
	}
}

// FailureMessage renders a human-readable summary of a failed outcome.
// Transport errors and non-2xx responses get distinct text.
func FailureMessage(out delivery.Outcome) string {
	if out.TransportError != "" {
		return fmt.Sprintf("connection error: %s", out.TransportError)
	}
	return fmt.Sprintf("HTTP %d: %s", out.HTTPStatus, http.StatusText(out.HTTPStatus))
}
