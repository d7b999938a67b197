package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/stretchr/testify/mock"
)

type TopUpRepository struct {
	mock.Mock
}

func (m *TopUpRepository) Create(ctx context.Context, topup *model.TopUp) error {
	args := m.Called(ctx, topup)
	return args.Error(0)
}

func (m *TopUpRepository) GetByMerchantRef(merchantRef string) (*model.TopUp, error) {
	args := m.Called(merchantRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TopUp), args.Error(1)
}

func (m *TopUpRepository) GetByAccountID(accountID int64) ([]model.TopUp, error) {
	args := m.Called(accountID)
	return args.Get(0).([]model.TopUp), args.Error(1)
}

func (m *TopUpRepository) SetGatewayResult(ctx context.Context, id int64, gatewayRef, paymentURL string) error {
	args := m.Called(ctx, id, gatewayRef, paymentURL)
	return args.Error(0)
}

func (m *TopUpRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to model.TopUpStatus, gatewayRef string) error {
	args := m.Called(ctx, id, from, to, gatewayRef)
	return args.Error(0)
}
