package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/stretchr/testify/mock"
)

type LedgerEntryRepository struct {
	mock.Mock
}

func (m *LedgerEntryRepository) Create(ctx context.Context, entry *model.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *LedgerEntryRepository) GetByCause(cause string) (*model.LedgerEntry, error) {
	args := m.Called(cause)
	return args.Get(0).(*model.LedgerEntry), args.Error(1)
}
