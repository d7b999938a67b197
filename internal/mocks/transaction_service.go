package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/service"
	"github.com/stretchr/testify/mock"
)

type TransactionService struct {
	mock.Mock
}

func (m *TransactionService) Checkout(ctx context.Context, cmd service.CheckoutCommand) (service.CheckoutResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.CheckoutResult), args.Error(1)
}

func (m *TransactionService) UpdateStatus(ctx context.Context, cmd service.UpdateStatusCommand) (service.UpdateStatusResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.UpdateStatusResult), args.Error(1)
}

func (m *TransactionService) History(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]model.Transaction), args.Error(1)
}
