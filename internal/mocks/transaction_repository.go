package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, trx *model.Transaction) error {
	args := m.Called(ctx, trx)
	return args.Error(0)
}

func (m *TransactionRepository) GetByID(id int64) (*model.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *TransactionRepository) GetByAccountID(accountID int64) ([]model.Transaction, error) {
	args := m.Called(accountID)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to model.TransactionStatus, notes *string) error {
	args := m.Called(ctx, id, from, to, notes)
	return args.Error(0)
}
