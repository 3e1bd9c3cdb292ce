package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/croakcroak22/webhook/internal/config"
	"github.com/croakcroak22/webhook/internal/models"
	"github.com/croakcroak22/webhook/internal/webhook"
)

// Selector decides which webhooks are due at the current instant. It only
// reads; claiming a webhook for execution is the executor's job, so calling
// Due repeatedly is harmless.
type Selector struct {
	webhooks webhook.WebhookRepoInterface
	logs     webhook.LogRepoInterface
	clock    Clock
}

func NewSelector(webhooks webhook.WebhookRepoInterface, logs webhook.LogRepoInterface, clock Clock) *Selector {
	if clock == nil {
		clock = RealClock{}
	}
	return &Selector{webhooks: webhooks, logs: logs, clock: clock}
}

// Due returns the webhooks whose scheduling condition is satisfied now, in
// creation order. The repository pre-filters by soft-delete, pending status
// and retry budget; Due applies the trigger condition on top.
func (s *Selector) Due(ctx context.Context) ([]models.Webhook, error) {
	now := s.clock.Now()

	candidates, err := s.webhooks.ListDue(ctx)
	if err != nil {
		return nil, fmt.Errorf("list due candidates: %w", err)
	}

	var due []models.Webhook
	for _, wh := range candidates {
		ok, err := s.triggerSatisfied(ctx, &wh, now)
		if err != nil {
			return nil, err
		}
		if ok {
			due = append(due, wh)
		}
	}
	return due, nil
}

func (s *Selector) triggerSatisfied(ctx context.Context, wh *models.Webhook, now time.Time) (bool, error) {
	switch wh.ScheduleKind {
	case config.ScheduleOnce:
		return wh.ScheduledAt != nil && !wh.ScheduledAt.After(now), nil

	case config.ScheduleInterval:
		if wh.IntervalMinutes <= 0 {
			return false, nil
		}
		last, err := s.logs.LastAttemptAt(ctx, wh.ID)
		if err != nil {
			return false, fmt.Errorf("last attempt for webhook %s: %w", wh.ID, err)
		}
		anchor := wh.CreatedAt
		if last != nil {
			anchor = *last
		}
		return now.Sub(anchor) >= time.Duration(wh.IntervalMinutes)*time.Minute, nil

	default:
		return false, nil
	}
}
