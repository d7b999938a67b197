package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/service"
	"github.com/stretchr/testify/mock"
)

type LedgerService struct {
	mock.Mock
}

func (m *LedgerService) ApplyDelta(ctx context.Context, cmd service.ApplyDeltaCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
