package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"gorm.io/gorm"
)

var ErrAccountNotFound = errors.New("ACCOUNT_NOT_FOUND")
var ErrAccountExists = errors.New("ACCOUNT_EXISTS")

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(id int64) (model.Account, error)
	AdjustBalance(ctx context.Context, accountID int64, delta int64) error
}

type account struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &account{db: db}
}

func (r *account) Create(ctx context.Context, acc *model.Account) error {
	db := GetTx(ctx, r.db)
	err := db.Create(acc).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrAccountExists
	}

	return err
}

func (r *account) FindByID(id int64) (model.Account, error) {
	var acc model.Account
	err := r.db.Where("id = ?", id).First(&acc).Error
	if err == nil {
		return acc, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Account{}, ErrAccountNotFound
	}

	return model.Account{}, err
}

// AdjustBalance moves the balance by delta in a single statement so
// concurrent writers serialize on the account row instead of racing a
// read-modify-write in application code.
func (r *account) AdjustBalance(ctx context.Context, accountID int64, delta int64) error {
	db := GetTx(ctx, r.db)

	result := db.Model(&model.Account{}).
		Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}
