package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/croakcroak22/webhook/internal/delivery"
)

type DeliveryClientMock struct {
	mock.Mock
}

func (m *DeliveryClientMock) Deliver(ctx context.Context, req delivery.Request) delivery.Outcome {
	args := m.Called(ctx, req)
	return args.Get(0).(delivery.Outcome)
}
