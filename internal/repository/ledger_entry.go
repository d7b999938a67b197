package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"gorm.io/gorm"
)

var ErrLedgerEntryExists = errors.New("LEDGER_ENTRY_EXISTED")

type LedgerEntryRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) error
	GetByCause(cause string) (*model.LedgerEntry, error)
}

type ledgerEntry struct {
	db *gorm.DB
}

func NewLedgerEntryRepository(db *gorm.DB) LedgerEntryRepository {
	return &ledgerEntry{db: db}
}

// Create claims the cause key. The unique index on cause makes this the
// idempotency gate: the second insert for the same logical event fails with
// a duplicate-key error inside the same transaction as the balance write.
func (r *ledgerEntry) Create(ctx context.Context, entry *model.LedgerEntry) error {
	db := GetTx(ctx, r.db)
	err := db.Create(entry).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrLedgerEntryExists
	}

	return err
}

func (r *ledgerEntry) GetByCause(cause string) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	err := r.db.Where("cause = ?", cause).First(&entry).Error
	if err == nil {
		return &entry, nil
	}

	return nil, err
}
