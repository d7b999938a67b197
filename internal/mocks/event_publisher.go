package mocks

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/stretchr/testify/mock"
)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishTopUpEvent(ctx context.Context, topup *model.TopUp) {
	m.Called(ctx, topup)
}

func (m *EventPublisher) PublishTransactionEvent(ctx context.Context, trx *model.Transaction) {
	m.Called(ctx, trx)
}
