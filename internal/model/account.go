package model

import "time"

type AccountStatus string

const (
	AccountStatusActive  AccountStatus = "active"
	AccountStatusBlocked AccountStatus = "blocked"
)

// Account holds the user balance in minor currency units. The balance column
// is only ever written through the ledger's single-statement delta update.
type Account struct {
	ID        int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string        `gorm:"column:username;type:varchar(100);uniqueIndex;not null"`
	Email     string        `gorm:"column:email;type:varchar(255)"`
	Balance   int64         `gorm:"column:balance;not null;default:0"`
	Status    AccountStatus `gorm:"column:status;type:enum('active','blocked');default:'active'"`
	CreatedAt time.Time     `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time     `gorm:"column:updated_at;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (Account) TableName() string {
	return "accounts"
}
