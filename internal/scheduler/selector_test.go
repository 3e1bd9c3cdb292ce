package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/croakcroak22/webhook/internal/config"
	"github.com/croakcroak22/webhook/internal/mocks"
	"github.com/croakcroak22/webhook/internal/models"
)

func TestSelector_Due_OnceSchedule(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	exact := now
	future := now.Add(time.Minute)

	candidates := []models.Webhook{
		{ID: "past", ScheduleKind: config.ScheduleOnce, ScheduledAt: &past},
		{ID: "exact", ScheduleKind: config.ScheduleOnce, ScheduledAt: &exact},
		{ID: "future", ScheduleKind: config.ScheduleOnce, ScheduledAt: &future},
		{ID: "no-time", ScheduleKind: config.ScheduleOnce},
	}

	repo := new(mocks.WebhookRepoMock)
	logs := new(mocks.LogRepoMock)
	repo.On("ListDue", mock.Anything).Return(candidates, nil)

	s := NewSelector(repo, logs, NewFixedClock(now))
	due, err := s.Due(context.Background())

	assert.NoError(t, err)
	ids := make([]string, 0, len(due))
	for _, wh := range due {
		ids = append(ids, wh.ID)
	}
	assert.Equal(t, []string{"past", "exact"}, ids)
}

func TestSelector_Due_IntervalAnchorsOnLastAttempt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-5 * time.Minute)
	old := now.Add(-30 * time.Minute)

	candidates := []models.Webhook{
		{ID: "elapsed", ScheduleKind: config.ScheduleInterval, IntervalMinutes: 10},
		{ID: "too-soon", ScheduleKind: config.ScheduleInterval, IntervalMinutes: 10},
	}

	repo := new(mocks.WebhookRepoMock)
	logs := new(mocks.LogRepoMock)
	repo.On("ListDue", mock.Anything).Return(candidates, nil)
	logs.On("LastAttemptAt", mock.Anything, "elapsed").Return(&old, nil)
	logs.On("LastAttemptAt", mock.Anything, "too-soon").Return(&recent, nil)

	s := NewSelector(repo, logs, NewFixedClock(now))
	due, err := s.Due(context.Background())

	assert.NoError(t, err)
	assert.Len(t, due, 1)
	assert.Equal(t, "elapsed", due[0].ID)
}

func TestSelector_Due_IntervalFallsBackToCreatedAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	candidates := []models.Webhook{
		{ID: "never-ran", ScheduleKind: config.ScheduleInterval, IntervalMinutes: 10,
			CreatedAt: now.Add(-15 * time.Minute)},
		{ID: "fresh", ScheduleKind: config.ScheduleInterval, IntervalMinutes: 10,
			CreatedAt: now.Add(-3 * time.Minute)},
	}

	repo := new(mocks.WebhookRepoMock)
	logs := new(mocks.LogRepoMock)
	repo.On("ListDue", mock.Anything).Return(candidates, nil)
	logs.On("LastAttemptAt", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)

	s := NewSelector(repo, logs, NewFixedClock(now))
	due, err := s.Due(context.Background())

	assert.NoError(t, err)
	assert.Len(t, due, 1)
	assert.Equal(t, "never-ran", due[0].ID)
}

func TestSelector_Due_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	lastAttempt := now.Add(-30 * time.Minute)

	candidates := []models.Webhook{
		{ID: "once-due", ScheduleKind: config.ScheduleOnce, ScheduledAt: &past},
		{ID: "interval-due", ScheduleKind: config.ScheduleInterval, IntervalMinutes: 10},
		{ID: "not-yet", ScheduleKind: config.ScheduleOnce, ScheduledAt: &future},
	}

	repo := new(mocks.WebhookRepoMock)
	logs := new(mocks.LogRepoMock)
	repo.On("ListDue", mock.Anything).Return(candidates, nil)
	logs.On("LastAttemptAt", mock.Anything, "interval-due").Return(&lastAttempt, nil)

	s := NewSelector(repo, logs, NewFixedClock(now))

	first, err := s.Due(context.Background())
	assert.NoError(t, err)
	second, err := s.Due(context.Background())
	assert.NoError(t, err)

	// Selection only reads; two back-to-back calls see the same set.
	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestSelector_Due_SkipsZeroInterval(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(mocks.WebhookRepoMock)
	logs := new(mocks.LogRepoMock)
	repo.On("ListDue", mock.Anything).Return([]models.Webhook{
		{ID: "broken", ScheduleKind: config.ScheduleInterval, IntervalMinutes: 0,
			CreatedAt: now.Add(-time.Hour)},
	}, nil)

	s := NewSelector(repo, logs, NewFixedClock(now))
	due, err := s.Due(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, due)
	logs.AssertNotCalled(t, "LastAttemptAt", mock.Anything, mock.Anything)
}
