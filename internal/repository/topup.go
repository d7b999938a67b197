package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"gorm.io/gorm"
)

var ErrTopUpNotFound = errors.New("TOPUP_NOT_FOUND")
var ErrTopUpDuplicateRef = errors.New("TOPUP_DUPLICATE_REF")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

type TopUpRepository interface {
	Create(ctx context.Context, topup *model.TopUp) error
	GetByMerchantRef(merchantRef string) (*model.TopUp, error)
	GetByAccountID(accountID int64) ([]model.TopUp, error)
	SetGatewayResult(ctx context.Context, id int64, gatewayRef, paymentURL string) error
	UpdateStatusFrom(ctx context.Context, id int64, from, to model.TopUpStatus, gatewayRef string) error
}

type topUp struct {
	db *gorm.DB
}

func NewTopUpRepository(db *gorm.DB) TopUpRepository {
	return &topUp{db: db}
}

func (r *topUp) Create(ctx context.Context, topup *model.TopUp) error {
	db := GetTx(ctx, r.db)
	err := db.Create(topup).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTopUpDuplicateRef
	}

	return err
}

func (r *topUp) GetByMerchantRef(merchantRef string) (*model.TopUp, error) {
	var topup model.TopUp
	err := r.db.Where("merchant_ref = ?", merchantRef).First(&topup).Error
	if err == nil {
		return &topup, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTopUpNotFound
	}

	return nil, err
}

func (r *topUp) GetByAccountID(accountID int64) ([]model.TopUp, error) {
	var topups []model.TopUp
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&topups).Error
	if err != nil {
		return nil, err
	}

	return topups, nil
}

func (r *topUp) SetGatewayResult(ctx context.Context, id int64, gatewayRef, paymentURL string) error {
	db := GetTx(ctx, r.db)
	return db.Model(&model.TopUp{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"gateway_ref": gatewayRef,
			"payment_url": paymentURL,
			"updated_at":  time.Now(),
		}).Error
}

// UpdateStatusFrom flips the status only when the row is still in the
// expected state. Zero rows affected means another caller got there first;
// the service resolves whether that is a replay or a conflict.
func (r *topUp) UpdateStatusFrom(ctx context.Context, id int64, from, to model.TopUpStatus, gatewayRef string) error {
	db := GetTx(ctx, r.db)

	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	if gatewayRef != "" {
		updates["gateway_ref"] = gatewayRef
	}

	result := db.Model(&model.TopUp{}).
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
