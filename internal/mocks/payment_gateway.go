package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/pkg/tripay"
	"github.com/stretchr/testify/mock"
)

type PaymentGateway struct {
	mock.Mock
}

func (p *PaymentGateway) CreateTransaction(ctx context.Context, request tripay.CreateTransactionRequest) (tripay.CreateTransactionResult, error) {
	args := p.Called(ctx, request)
	return args.Get(0).(tripay.CreateTransactionResult), args.Error(1)
}

func (p *PaymentGateway) ListPaymentChannels(ctx context.Context) ([]tripay.PaymentChannel, error) {
	args := p.Called(ctx)
	return args.Get(0).([]tripay.PaymentChannel), args.Error(1)
}
