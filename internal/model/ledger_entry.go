package model

import "time"

// LedgerEntry records one applied balance delta. Cause uniquely identifies
// the logical event ("txn:42:success", "topup:TOPUP-7-abc:success"); the
// unique index is what makes replays collapse into a single application.
type LedgerEntry struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement;<-:create"`
	AccountID int64     `gorm:"column:account_id;not null;<-:create"`
	Delta     int64     `gorm:"column:delta;not null;<-:create"`
	Cause     string    `gorm:"column:cause;type:varchar(128);uniqueIndex;not null;<-:create"`
	AppliedAt time.Time `gorm:"column:applied_at;default:CURRENT_TIMESTAMP;<-:create"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
