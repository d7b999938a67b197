package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jasenardian/react-digital-clean/internal/model"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")

type TransactionRepository interface {
	Create(ctx context.Context, trx *model.Transaction) error
	GetByID(id int64) (*model.Transaction, error)
	GetByAccountID(accountID int64) ([]model.Transaction, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to model.TransactionStatus, notes *string) error
}

type transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transaction{db: db}
}

func (r *transaction) Create(ctx context.Context, trx *model.Transaction) error {
	db := GetTx(ctx, r.db)
	return db.Create(trx).Error
}

func (r *transaction) GetByID(id int64) (*model.Transaction, error) {
	var trx model.Transaction
	err := r.db.Where("id = ?", id).First(&trx).Error
	if err == nil {
		return &trx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *transaction) GetByAccountID(accountID int64) ([]model.Transaction, error) {
	var trxs []model.Transaction
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&trxs).Error
	if err != nil {
		return nil, err
	}

	return trxs, nil
}

// UpdateStatusFrom is the compare-and-swap on the transaction status.
// Concurrent admin updates serialize here: only the caller that observes the
// expected previous status performs the write.
func (r *transaction) UpdateStatusFrom(ctx context.Context, id int64, from, to model.TransactionStatus, notes *string) error {
	db := GetTx(ctx, r.db)

	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := db.Model(&model.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
