package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/croakcroak22/webhook/internal/models"
)

type LogRepoMock struct {
	mock.Mock
}

func (m *LogRepoMock) Create(ctx context.Context, entry *models.WebhookLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *LogRepoMock) ListByWebhook(ctx context.Context, webhookID string, limit, offset int) ([]models.WebhookLog, int64, error) {
	args := m.Called(ctx, webhookID, limit, offset)

	entries, _ := args.Get(0).([]models.WebhookLog)
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *LogRepoMock) ListAll(ctx context.Context, limit, offset int) ([]models.WebhookLogDetail, int64, error) {
	args := m.Called(ctx, limit, offset)

	details, _ := args.Get(0).([]models.WebhookLogDetail)
	return details, args.Get(1).(int64), args.Error(2)
}

func (m *LogRepoMock) LastAttemptAt(ctx context.Context, webhookID string) (*time.Time, error) {
	args := m.Called(ctx, webhookID)

	ts, _ := args.Get(0).(*time.Time)
	return ts, args.Error(1)
}
