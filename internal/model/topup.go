package model

import "time"

type TopUpStatus string

const (
	TopUpStatusPending TopUpStatus = "pending"
	TopUpStatusSuccess TopUpStatus = "success"
	TopUpStatusFailed  TopUpStatus = "failed"
)

// TopUp is a balance top-up request. MerchantRef correlates the request with
// the gateway's asynchronous callback and is the idempotency anchor for the
// credit.
type TopUp struct {
	ID            int64       `gorm:"column:id;primaryKey;autoIncrement;<-:create"`
	AccountID     int64       `gorm:"column:account_id;not null;<-:create"`
	Amount        int64       `gorm:"column:amount;not null;<-:create"`
	MerchantRef   string      `gorm:"column:merchant_ref;type:varchar(64);uniqueIndex;not null;<-:create"`
	PaymentMethod string      `gorm:"column:payment_method;type:varchar(32);not null;<-:create"`
	Status        TopUpStatus `gorm:"column:status;type:enum('pending','success','failed');default:'pending'"`
	GatewayRef    *string     `gorm:"column:gateway_ref;type:varchar(64)"`
	PaymentURL    *string     `gorm:"column:payment_url;type:varchar(255)"`
	CreatedAt     time.Time   `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time   `gorm:"column:updated_at;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (TopUp) TableName() string {
	return "topups"
}
