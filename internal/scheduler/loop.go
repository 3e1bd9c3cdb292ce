package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/croakcroak22/webhook/internal/metrics"
	"github.com/croakcroak22/webhook/internal/webhook"
)

// Loop fires at a fixed cadence, asks the selector for due webhooks and
// runs each through the executor. One webhook failing, in delivery or in
// persistence, never stops the rest of the tick or the loop itself. Ticks
// hold no cross-tick state.
type Loop struct {
	selector *Selector
	executor webhook.ExecutorInterface
	interval time.Duration
	sem      *semaphore.Weighted
	logger   *zap.Logger
	cron     *cron.Cron
}

func NewLoop(
	selector *Selector,
	executor webhook.ExecutorInterface,
	interval time.Duration,
	maxInflight int64,
	logger *zap.Logger,
) *Loop {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxInflight < 1 {
		maxInflight = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		selector: selector,
		executor: executor,
		interval: interval,
		sem:      semaphore.NewWeighted(maxInflight),
		logger:   logger,
	}
}

// Start schedules the recurring tick and returns immediately.
func (l *Loop) Start() error {
	l.cron = cron.New()
	if _, err := l.cron.AddFunc(fmt.Sprintf("@every %s", l.interval), func() {
		l.RunTick(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}
	l.cron.Start()
	l.logger.Info("scheduler started", zap.Duration("interval", l.interval))
	return nil
}

// Stop halts the cadence and waits for a tick in progress to finish.
func (l *Loop) Stop() {
	if l.cron == nil {
		return
	}
	<-l.cron.Stop().Done()
	l.logger.Info("scheduler stopped")
}

// RunTick performs one scheduling pass. Exported so tests and callers can
// drive ticks without the cron cadence.
func (l *Loop) RunTick(ctx context.Context) {
	due, err := l.selector.Due(ctx)
	if err != nil {
		l.logger.Error("due selection failed", zap.Error(err))
		return
	}
	if len(due) == 0 {
		metrics.SchedulerTicks.Inc()
		return
	}

	l.logger.Info("tick", zap.Int("due", len(due)))

	var wg sync.WaitGroup
	for i := range due {
		wh := due[i]

		if err := l.sem.Acquire(ctx, 1); err != nil {
			l.logger.Warn("tick interrupted", zap.Error(err))
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer l.sem.Release(1)

			if _, err := l.executor.Execute(ctx, &wh, false); err != nil {
				if errors.Is(err, webhook.ErrNotPending) {
					return
				}
				l.logger.Error("scheduled execution failed",
					zap.String("webhook_id", wh.ID),
					zap.String("name", wh.Name),
					zap.Error(err),
				)
			}
		}()
	}
	wg.Wait()
	metrics.SchedulerTicks.Inc()
}
