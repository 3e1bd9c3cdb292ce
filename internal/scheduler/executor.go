package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/croakcroak22/webhook/internal/config"
	"github.com/croakcroak22/webhook/internal/delivery"
	"github.com/croakcroak22/webhook/internal/dto"
	"github.com/croakcroak22/webhook/internal/metrics"
	"github.com/croakcroak22/webhook/internal/models"
	"github.com/croakcroak22/webhook/internal/webhook"
)

// Executor drives one webhook through a delivery attempt: claim, deliver,
// apply the retry policy, persist the new state and append one log entry.
type Executor struct {
	webhooks webhook.WebhookRepoInterface
	logs     webhook.LogRepoInterface
	client   delivery.Client
	clock    Clock
	logger   *zap.Logger
}

func NewExecutor(
	webhooks webhook.WebhookRepoInterface,
	logs webhook.LogRepoInterface,
	client delivery.Client,
	clock Clock,
	logger *zap.Logger,
) *Executor {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{webhooks: webhooks, logs: logs, client: client, clock: clock, logger: logger}
}

var _ webhook.ExecutorInterface = (*Executor)(nil)

// Execute runs one delivery attempt. The claim is an optimistic check: if
// the webhook's persisted status is not pending at that moment (another
// tick or a manual call got there first), Execute aborts with
// webhook.ErrNotPending. The claim also refreshes the row, so the retry
// decision is made on current counters even when the caller's snapshot
// predates an intervening attempt.
// Any other returned error is a persistence failure; the delivery outcome
// itself, success or failure, is absorbed into webhook state per policy.
func (e *Executor) Execute(ctx context.Context, wh *models.Webhook, isManual bool) (*dto.ExecutionResultDTO, error) {
	start := e.clock.Now()

	cur, err := e.webhooks.Claim(ctx, wh.ID)
	if err != nil {
		return nil, fmt.Errorf("claim webhook %s: %w", wh.ID, err)
	}
	if cur == nil {
		return nil, webhook.ErrNotPending
	}

	payload := dto.DeliveryPayload{
		Name:        cur.Name,
		Message:     cur.Message,
		Leads:       json.RawMessage(cur.Leads),
		Tags:        json.RawMessage(cur.Tags),
		ScheduledAt: cur.ScheduledAt,
		ExecutedAt:  start,
		IsManual:    isManual,
	}

	out := e.client.Deliver(ctx, delivery.Request{URL: cur.TargetURL, Body: payload})
	decision := Decide(cur, out)

	finished := e.clock.Now()
	durationMs := finished.Sub(start).Milliseconds()
	metrics.DeliveryDuration.Observe(finished.Sub(start).Seconds())

	fields := map[string]any{
		"status":      string(decision.NextStatus),
		"retry_count": decision.NextRetryCount,
		"last_error":  decision.ErrorMessage,
	}
	if out.Succeeded {
		fields["executed_at"] = finished
	}
	if err := e.webhooks.Update(ctx, cur.ID, fields); err != nil {
		return nil, fmt.Errorf("persist outcome for webhook %s: %w", cur.ID, err)
	}

	var message string
	entry := models.WebhookLog{
		ID:         uuid.NewString(),
		WebhookID:  cur.ID,
		Timestamp:  finished,
		Response:   datatypes.JSON(out.ResponseBody),
		DurationMs: durationMs,
	}

	if out.Succeeded {
		message = fmt.Sprintf("webhook delivered (HTTP %d)", out.HTTPStatus)
		entry.Status = config.LogStatusSuccess
		metrics.DeliveriesSent.Inc()
	} else {
		message = decision.ErrorMessage
		entry.Status = config.LogStatusError
		entry.ErrorMessage = decision.ErrorMessage
		metrics.DeliveriesFailed.Inc()
	}
	entry.Message = message

	if err := e.logs.Create(ctx, &entry); err != nil {
		return nil, fmt.Errorf("append log for webhook %s: %w", cur.ID, err)
	}

	e.logger.Info("webhook executed",
		zap.String("webhook_id", cur.ID),
		zap.String("name", cur.Name),
		zap.Bool("success", out.Succeeded),
		zap.Bool("manual", isManual),
		zap.Int64("duration_ms", durationMs),
	)

	return &dto.ExecutionResultDTO{
		Success:    out.Succeeded,
		Message:    message,
		DurationMs: durationMs,
	}, nil
}
