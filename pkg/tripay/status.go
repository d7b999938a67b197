package tripay

// Gateway payment statuses as they appear on callbacks.
const (
	StatusPaid    = "PAID"
	StatusUnpaid  = "UNPAID"
	StatusExpired = "EXPIRED"
	StatusFailed  = "FAILED"
)

// PaymentStatus is the internal vocabulary handed to the reconciliation
// layer. Gateway strings never travel past this package.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
	PaymentPending PaymentStatus = "pending"
)

var statusMap = map[string]PaymentStatus{
	StatusPaid:    PaymentSuccess,
	StatusExpired: PaymentFailed,
	StatusFailed:  PaymentFailed,
	StatusUnpaid:  PaymentPending,
}

// MapStatus translates a gateway status into the internal vocabulary.
// Unknown statuses map to pending so a new gateway value never triggers a
// state transition.
func MapStatus(gatewayStatus string) PaymentStatus {
	if status, exists := statusMap[gatewayStatus]; exists {
		return status
	}

	return PaymentPending
}
