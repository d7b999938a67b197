package service

import "github.com/jasenardian/react-digital-clean/internal/model"

type ApplyDeltaCommand struct {
	AccountID int64
	Delta     int64
	Cause     string
}

type CreateTopUpCommand struct {
	AccountID     int64
	Amount        int64
	PaymentMethod string
}

type CreateTopUpResult struct {
	TopUpID     int64  `json:"topup_id"`
	MerchantRef string `json:"merchant_ref"`
	Reference   string `json:"reference"`
	PaymentURL  string `json:"payment_url"`
	Status      string `json:"status"`
}

// CallbackOutcome classifies how a callback (or simulation) was resolved.
// Everything except "applied" is a recovered no-op from the gateway's point
// of view.
type CallbackOutcome string

const (
	CallbackApplied    CallbackOutcome = "applied"
	CallbackReplayed   CallbackOutcome = "replayed"
	CallbackIgnored    CallbackOutcome = "ignored"
	CallbackUnknownRef CallbackOutcome = "unknown_ref"
	CallbackConflict   CallbackOutcome = "conflict"
)

type CallbackResult struct {
	Outcome     CallbackOutcome
	MerchantRef string
	Status      model.TopUpStatus
}

type SimulatePaymentCommand struct {
	MerchantRef string
	Status      string
}

type CheckoutCommand struct {
	AccountID int64
	ProductID int64
	Quantity  int
	Notes     string
}

type CheckoutResult struct {
	TransactionID   int64  `json:"transaction_id"`
	TransactionCode string `json:"transaction_code"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
}

type UpdateStatusCommand struct {
	TransactionID int64
	NewStatus     model.TransactionStatus
	Actor         string
	AdminNotes    string
}

type UpdateStatusResult struct {
	TransactionID int64                   `json:"transaction_id"`
	Status        model.TransactionStatus `json:"status"`
	Replayed      bool                    `json:"replayed"`
}

type RegisterAccountCommand struct {
	Username string
	Email    string
}
