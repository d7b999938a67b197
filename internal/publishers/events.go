package publishers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/pkg/mq"
	"go.uber.org/zap"
)

const (
	topUpRoutingPrefix       = "payment.topup."
	transactionRoutingPrefix = "payment.transaction."
)

// EventPublisher announces committed state transitions. Publishing is best
// effort: a broker outage must never fail or retry a reconciliation that
// already committed.
type EventPublisher interface {
	PublishTopUpEvent(ctx context.Context, topup *model.TopUp)
	PublishTransactionEvent(ctx context.Context, trx *model.Transaction)
}

type paymentEvents struct {
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewEventPublisher(publisher mq.Publisher, logger *zap.Logger) EventPublisher {
	return &paymentEvents{publisher: publisher, logger: logger}
}

type topUpEvent struct {
	TopUpID     int64  `json:"topup_id"`
	AccountID   int64  `json:"account_id"`
	Amount      int64  `json:"amount"`
	MerchantRef string `json:"merchant_ref"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurred_at"`
}

type transactionEvent struct {
	TransactionID   int64  `json:"transaction_id"`
	AccountID       int64  `json:"account_id"`
	Amount          int64  `json:"amount"`
	TransactionCode string `json:"transaction_code"`
	Status          string `json:"status"`
	OccurredAt      string `json:"occurred_at"`
}

func (p *paymentEvents) PublishTopUpEvent(ctx context.Context, topup *model.TopUp) {
	event := topUpEvent{
		TopUpID:     topup.ID,
		AccountID:   topup.AccountID,
		Amount:      topup.Amount,
		MerchantRef: topup.MerchantRef,
		Status:      string(topup.Status),
		OccurredAt:  time.Now().Format(time.RFC3339),
	}

	body, _ := json.Marshal(event)
	if err := p.publisher.Publish(ctx, "", topUpRoutingPrefix+string(topup.Status), body); err != nil {
		p.logger.Warn("Failed to publish top up event",
			zap.Error(err),
			zap.String("merchantRef", topup.MerchantRef),
			zap.String("status", string(topup.Status)))
	}
}

func (p *paymentEvents) PublishTransactionEvent(ctx context.Context, trx *model.Transaction) {
	event := transactionEvent{
		TransactionID:   trx.ID,
		AccountID:       trx.AccountID,
		Amount:          trx.Amount,
		TransactionCode: trx.TransactionCode,
		Status:          string(trx.Status),
		OccurredAt:      time.Now().Format(time.RFC3339),
	}

	body, _ := json.Marshal(event)
	if err := p.publisher.Publish(ctx, "", transactionRoutingPrefix+string(trx.Status), body); err != nil {
		p.logger.Warn("Failed to publish transaction event",
			zap.Error(err),
			zap.String("transactionCode", trx.TransactionCode),
			zap.String("status", string(trx.Status)))
	}
}
