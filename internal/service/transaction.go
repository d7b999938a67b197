package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jasenardian/react-digital-clean/internal/constants"
	"github.com/jasenardian/react-digital-clean/internal/metrics"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/publishers"
	"github.com/jasenardian/react-digital-clean/internal/repository"
	"github.com/jasenardian/react-digital-clean/internal/statemachine"
	"go.uber.org/zap"
)

type TransactionService interface {
	Checkout(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error)
	UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) (UpdateStatusResult, error)
	History(ctx context.Context, accountID int64) ([]model.Transaction, error)
}

type transaction struct {
	trxRepo     repository.TransactionRepository
	productRepo repository.ProductRepository
	accountRepo repository.AccountRepository
	ledger      LedgerService
	txManager   repository.TxManager
	events      publishers.EventPublisher
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewTransactionService(trxRepo repository.TransactionRepository, productRepo repository.ProductRepository,
	accountRepo repository.AccountRepository, ledger LedgerService, txManager repository.TxManager,
	events publishers.EventPublisher, logger *zap.Logger, metrics *metrics.Metrics) TransactionService {
	return &transaction{trxRepo: trxRepo, productRepo: productRepo, accountRepo: accountRepo,
		ledger: ledger, txManager: txManager, events: events, logger: logger, metrics: metrics}
}

func (s *transaction) Checkout(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	product, err := s.productRepo.GetByID(cmd.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return CheckoutResult{}, NewServiceError(constants.ErrCodeProductNotFound, err)
		}
		return CheckoutResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	account, err := s.accountRepo.FindByID(cmd.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return CheckoutResult{}, NewServiceError(constants.ErrCodeAccountNotFound, err)
		}
		return CheckoutResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	amount := product.Price * int64(cmd.Quantity)

	// Advisory check only. The balance is not reserved here and is not
	// re-verified when the transaction is later confirmed.
	if account.Balance < amount {
		return CheckoutResult{}, NewServiceError(constants.ErrCodeInsufficientBalance,
			fmt.Errorf("balance %d below amount %d", account.Balance, amount))
	}

	var notes *string
	if cmd.Notes != "" {
		notes = &cmd.Notes
	}

	trx := model.Transaction{
		AccountID:       cmd.AccountID,
		ProductID:       cmd.ProductID,
		Amount:          amount,
		Quantity:        cmd.Quantity,
		Status:          model.TransactionStatusPending,
		TransactionCode: generateTransactionCode(),
		Notes:           notes,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.trxRepo.Create(ctx, &trx); err != nil {
		s.logger.Error("Failed to create transaction", zap.Error(err))
		return CheckoutResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordTransactionCreated()

	s.logger.Info("Transaction created",
		zap.Int64("transactionID", trx.ID),
		zap.String("transactionCode", trx.TransactionCode),
		zap.Int64("accountID", cmd.AccountID),
		zap.Int64("amount", amount))

	return CheckoutResult{
		TransactionID:   trx.ID,
		TransactionCode: trx.TransactionCode,
		Amount:          amount,
		Status:          string(model.TransactionStatusPending),
	}, nil
}

func (s *transaction) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) (UpdateStatusResult, error) {
	trx, err := s.trxRepo.GetByID(cmd.TransactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return UpdateStatusResult{}, NewServiceError(constants.ErrCodeTransactionNotFound, err)
		}
		return UpdateStatusResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	effect, err := statemachine.PurchaseNext(trx.Status, cmd.NewStatus)
	if err != nil {
		if errors.Is(err, statemachine.ErrNoTransition) {
			s.logger.Info("Status update replayed, transaction already in target status",
				zap.Int64("transactionID", trx.ID),
				zap.String("status", string(trx.Status)),
				zap.String("actor", cmd.Actor))
			return UpdateStatusResult{TransactionID: trx.ID, Status: trx.Status, Replayed: true}, nil
		}

		return UpdateStatusResult{}, NewServiceError(constants.ErrCodeInvalidTransition, err)
	}

	notes := appendAdminNote(trx.Notes, cmd.Actor, cmd.AdminNotes)

	replayed := false
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		err := s.trxRepo.UpdateStatusFrom(ctx, trx.ID, trx.Status, cmd.NewStatus, notes)
		if err != nil {
			if !errors.Is(err, repository.ErrNoRowsAffected) {
				return NewServiceError(constants.ErrCodeOperationFailed, err)
			}

			// Lost the swap to a concurrent update. If the other writer
			// landed on the same status this is a replay; anything else is a
			// conflict.
			current, err := s.trxRepo.GetByID(trx.ID)
			if err != nil {
				return NewServiceError(constants.ErrCodeOperationFailed, err)
			}

			if current.Status == cmd.NewStatus {
				replayed = true
				return nil
			}

			return NewServiceError(constants.ErrCodeInvalidTransition,
				fmt.Errorf("transaction moved to %s concurrently", current.Status))
		}

		switch effect {
		case statemachine.EffectDebit:
			deltaCmd := ApplyDeltaCommand{
				AccountID: trx.AccountID,
				Delta:     -trx.Amount,
				Cause:     fmt.Sprintf("txn:%d:success", trx.ID),
			}
			if err := s.ledger.ApplyDelta(ctx, deltaCmd); err != nil && !errors.Is(err, ErrAlreadyApplied) {
				return NewServiceError(constants.ErrCodeOperationFailed, err)
			}
		case statemachine.EffectCredit:
			deltaCmd := ApplyDeltaCommand{
				AccountID: trx.AccountID,
				Delta:     trx.Amount,
				Cause:     fmt.Sprintf("txn:%d:reversal", trx.ID),
			}
			if err := s.ledger.ApplyDelta(ctx, deltaCmd); err != nil && !errors.Is(err, ErrAlreadyApplied) {
				return NewServiceError(constants.ErrCodeOperationFailed, err)
			}
		}

		return nil
	})
	if err != nil {
		return UpdateStatusResult{}, err
	}

	s.metrics.RecordStatusOverride(string(cmd.NewStatus))

	trx.Status = cmd.NewStatus
	trx.Notes = notes
	s.events.PublishTransactionEvent(ctx, trx)

	s.logger.Info("Transaction status updated",
		zap.Int64("transactionID", trx.ID),
		zap.String("status", string(cmd.NewStatus)),
		zap.String("actor", cmd.Actor),
		zap.Bool("replayed", replayed))

	return UpdateStatusResult{TransactionID: trx.ID, Status: cmd.NewStatus, Replayed: replayed}, nil
}

func (s *transaction) History(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	trxs, err := s.trxRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return trxs, nil
}

func generateTransactionCode() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return fmt.Sprintf("TRX%d%s", time.Now().UnixMilli(), suffix)
}

func appendAdminNote(existing *string, actor, note string) *string {
	if note == "" {
		return existing
	}

	combined := fmt.Sprintf("[Admin %s]: %s", actor, note)
	if existing != nil && *existing != "" {
		combined = *existing + "\n" + combined
	}

	return &combined
}
