package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/stretchr/testify/mock"
)

type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *AccountRepository) FindByID(id int64) (model.Account, error) {
	args := m.Called(id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountRepository) AdjustBalance(ctx context.Context, accountID int64, delta int64) error {
	args := m.Called(ctx, accountID, delta)
	return args.Error(0)
}
