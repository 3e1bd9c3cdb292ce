package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/croakcroak22/webhook/internal/models"
)

type WebhookRepoMock struct {
	mock.Mock
}

func (m *WebhookRepoMock) Create(ctx context.Context, wh *models.Webhook) error {
	args := m.Called(ctx, wh)
	return args.Error(0)
}

func (m *WebhookRepoMock) Get(ctx context.Context, id string) (*models.Webhook, error) {
	args := m.Called(ctx, id)

	wh, _ := args.Get(0).(*models.Webhook)
	return wh, args.Error(1)
}

func (m *WebhookRepoMock) List(ctx context.Context, deleted bool, status string) ([]models.Webhook, error) {
	args := m.Called(ctx, deleted, status)

	webhooks, _ := args.Get(0).([]models.Webhook)
	return webhooks, args.Error(1)
}

func (m *WebhookRepoMock) Update(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *WebhookRepoMock) ListDue(ctx context.Context) ([]models.Webhook, error) {
	args := m.Called(ctx)

	webhooks, _ := args.Get(0).([]models.Webhook)
	return webhooks, args.Error(1)
}

func (m *WebhookRepoMock) Claim(ctx context.Context, id string) (*models.Webhook, error) {
	args := m.Called(ctx, id)

	wh, _ := args.Get(0).(*models.Webhook)
	return wh, args.Error(1)
}

func (m *WebhookRepoMock) SoftDelete(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *WebhookRepoMock) SoftDeleteAll(ctx context.Context, at time.Time) (int64, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *WebhookRepoMock) Restore(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WebhookRepoMock) Purge(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WebhookRepoMock) PurgeDeleted(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
