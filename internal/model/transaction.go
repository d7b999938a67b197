package model

import "time"

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// ValidTransactionStatus reports whether s is part of the purchase status
// vocabulary. Used to reject unknown enum values at the API edge.
func ValidTransactionStatus(s string) bool {
	switch TransactionStatus(s) {
	case TransactionStatusPending, TransactionStatusSuccess,
		TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// Transaction is a purchase of a digital product. Amount is fixed at
// creation; status only moves along the purchase state machine.
type Transaction struct {
	ID              int64             `gorm:"column:id;primaryKey;autoIncrement;<-:create"`
	AccountID       int64             `gorm:"column:account_id;not null;<-:create"`
	ProductID       int64             `gorm:"column:product_id;not null;<-:create"`
	Amount          int64             `gorm:"column:amount;not null;<-:create"`
	Quantity        int               `gorm:"column:quantity;not null;default:1;<-:create"`
	Status          TransactionStatus `gorm:"column:status;type:enum('pending','success','failed','cancelled');default:'pending'"`
	TransactionCode string            `gorm:"column:transaction_code;type:varchar(64);uniqueIndex;not null;<-:create"`
	Notes           *string           `gorm:"column:notes;type:text"`
	CreatedAt       time.Time         `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (Transaction) TableName() string {
	return "transactions"
}
