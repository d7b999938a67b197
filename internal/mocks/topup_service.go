package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/service"
	"github.com/jasenardian/react-digital-clean/pkg/tripay"
	"github.com/stretchr/testify/mock"
)

type TopUpService struct {
	mock.Mock
}

func (m *TopUpService) CreateTopUp(ctx context.Context, cmd service.CreateTopUpCommand) (service.CreateTopUpResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.CreateTopUpResult), args.Error(1)
}

func (m *TopUpService) HandleCallback(ctx context.Context, rawBody []byte, signatureHeader string) (service.CallbackResult, error) {
	args := m.Called(ctx, rawBody, signatureHeader)
	return args.Get(0).(service.CallbackResult), args.Error(1)
}

func (m *TopUpService) SimulatePayment(ctx context.Context, cmd service.SimulatePaymentCommand) (service.CallbackResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.CallbackResult), args.Error(1)
}

func (m *TopUpService) History(ctx context.Context, accountID int64) ([]model.TopUp, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]model.TopUp), args.Error(1)
}

func (m *TopUpService) PaymentChannels(ctx context.Context) ([]tripay.PaymentChannel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tripay.PaymentChannel), args.Error(1)
}
