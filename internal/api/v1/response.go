package v1

import "time"

type CallbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type AccountResponse struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Balance   int64  `json:"balance"`
	Status    string `json:"status"`
}

type TopUpResponse struct {
	TopUpID       int64     `json:"topup_id"`
	Amount        int64     `json:"amount"`
	MerchantRef   string    `json:"merchant_ref"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type TransactionResponse struct {
	TransactionID   int64     `json:"transaction_id"`
	ProductID       int64     `json:"product_id"`
	Amount          int64     `json:"amount"`
	Quantity        int       `json:"quantity"`
	Status          string    `json:"status"`
	TransactionCode string    `json:"transaction_code"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
}
