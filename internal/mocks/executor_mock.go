package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/croakcroak22/webhook/internal/dto"
	"github.com/croakcroak22/webhook/internal/models"
)

type ExecutorMock struct {
	mock.Mock
}

func (m *ExecutorMock) Execute(ctx context.Context, wh *models.Webhook, isManual bool) (*dto.ExecutionResultDTO, error) {
	args := m.Called(ctx, wh, isManual)

	result, _ := args.Get(0).(*dto.ExecutionResultDTO)
	return result, args.Error(1)
}
