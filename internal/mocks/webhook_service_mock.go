package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/croakcroak22/webhook/internal/dto"
)

type WebhookServiceMock struct {
	mock.Mock
}

func (m *WebhookServiceMock) Create(ctx context.Context, in *dto.WebhookCreateDTO) (*dto.WebhookResponseDTO, error) {
	args := m.Called(ctx, in)

	resp, _ := args.Get(0).(*dto.WebhookResponseDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) Get(ctx context.Context, id string) (*dto.WebhookResponseDTO, error) {
	args := m.Called(ctx, id)

	resp, _ := args.Get(0).(*dto.WebhookResponseDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) List(ctx context.Context, status string) ([]dto.WebhookResponseDTO, error) {
	args := m.Called(ctx, status)

	resp, _ := args.Get(0).([]dto.WebhookResponseDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) ListTrash(ctx context.Context) ([]dto.WebhookResponseDTO, error) {
	args := m.Called(ctx)

	resp, _ := args.Get(0).([]dto.WebhookResponseDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) Update(ctx context.Context, id string, in *dto.WebhookUpdateDTO) (*dto.WebhookResponseDTO, error) {
	args := m.Called(ctx, id, in)

	resp, _ := args.Get(0).(*dto.WebhookResponseDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) ExecuteNow(ctx context.Context, id string) (*dto.ExecutionResultDTO, error) {
	args := m.Called(ctx, id)

	resp, _ := args.Get(0).(*dto.ExecutionResultDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) Cancel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WebhookServiceMock) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WebhookServiceMock) Restore(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WebhookServiceMock) Purge(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *WebhookServiceMock) SoftDeleteAll(ctx context.Context, confirm string) (*dto.BulkResultDTO, error) {
	args := m.Called(ctx, confirm)

	resp, _ := args.Get(0).(*dto.BulkResultDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) EmptyTrash(ctx context.Context, confirm string) (*dto.PurgeResultDTO, error) {
	args := m.Called(ctx, confirm)

	resp, _ := args.Get(0).(*dto.PurgeResultDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) Logs(ctx context.Context, webhookID string, limit, offset int) (*dto.LogPageDTO, error) {
	args := m.Called(ctx, webhookID, limit, offset)

	resp, _ := args.Get(0).(*dto.LogPageDTO)
	return resp, args.Error(1)
}

func (m *WebhookServiceMock) AllLogs(ctx context.Context, limit, offset int) (*dto.LogPageDTO, error) {
	args := m.Called(ctx, limit, offset)

	resp, _ := args.Get(0).(*dto.LogPageDTO)
	return resp, args.Error(1)
}
