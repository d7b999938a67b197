package tripay

type apiResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

type transactionData struct {
	Reference   string `json:"reference"`
	MerchantRef string `json:"merchant_ref"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}

// CreateTransactionResult is what the reconciliation layer needs back from a
// checkout-session create: the gateway-assigned reference and where to send
// the customer.
type CreateTransactionResult struct {
	Reference   string
	CheckoutURL string
}

type channelData struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	FeeFlat    int64  `json:"fee_flat"`
	FeePercent string `json:"fee_percent"`
	Active     bool   `json:"active"`
	IconURL    string `json:"icon_url"`
}

type PaymentChannel struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	FeeFlat int64  `json:"fee_flat"`
	IconURL string `json:"icon_url"`
}
