package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/service"
	"github.com/stretchr/testify/mock"
)

type AccountService struct {
	mock.Mock
}

func (m *AccountService) Register(ctx context.Context, cmd service.RegisterAccountCommand) (model.Account, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountService) GetBalance(ctx context.Context, accountID int64) (model.Account, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(model.Account), args.Error(1)
}
