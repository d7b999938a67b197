package v1

type RegisterAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type CreateTopUpRequest struct {
	Amount        int64  `json:"amount" validate:"required,min=1"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type SimulatePaymentRequest struct {
	MerchantRef string `json:"merchant_ref" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=success failed"`
}

type CheckoutRequest struct {
	ProductID int64  `json:"product_id" validate:"required,min=1"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

type UpdateTransactionStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"admin_notes" validate:"omitempty,max=500"`
}
