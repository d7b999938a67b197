package service

import (
	"context"
	"errors"
	"time"

	"github.com/jasenardian/react-digital-clean/internal/metrics"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/repository"
	"go.uber.org/zap"
)

// ErrAlreadyApplied signals that the cause key was claimed earlier. Callers
// treat it as success: the money already moved exactly once.
var ErrAlreadyApplied = errors.New("ALREADY_APPLIED")

// LedgerService is the single choke point for balance mutation. ApplyDelta
// must run inside a TxManager.WithTx scope so the idempotency claim, the
// balance update and the caller's status write commit or roll back together.
type LedgerService interface {
	ApplyDelta(ctx context.Context, cmd ApplyDeltaCommand) error
}

type ledger struct {
	accountRepo repository.AccountRepository
	entryRepo   repository.LedgerEntryRepository
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewLedgerService(accountRepo repository.AccountRepository, entryRepo repository.LedgerEntryRepository,
	logger *zap.Logger, metrics *metrics.Metrics) LedgerService {
	return &ledger{accountRepo: accountRepo, entryRepo: entryRepo, logger: logger, metrics: metrics}
}

func (l *ledger) ApplyDelta(ctx context.Context, cmd ApplyDeltaCommand) error {
	entry := model.LedgerEntry{
		AccountID: cmd.AccountID,
		Delta:     cmd.Delta,
		Cause:     cmd.Cause,
		AppliedAt: time.Now(),
	}

	if err := l.entryRepo.Create(ctx, &entry); err != nil {
		if errors.Is(err, repository.ErrLedgerEntryExists) {
			l.logger.Info("Ledger cause already applied, skipping delta",
				zap.String("cause", cmd.Cause),
				zap.Int64("accountID", cmd.AccountID))
			return ErrAlreadyApplied
		}

		l.logger.Error("Failed to claim ledger cause", zap.Error(err), zap.String("cause", cmd.Cause))
		return err
	}

	if err := l.accountRepo.AdjustBalance(ctx, cmd.AccountID, cmd.Delta); err != nil {
		l.logger.Error("Failed to adjust balance",
			zap.Error(err),
			zap.Int64("accountID", cmd.AccountID),
			zap.Int64("delta", cmd.Delta),
			zap.String("cause", cmd.Cause))
		return err
	}

	direction := "credit"
	if cmd.Delta < 0 {
		direction = "debit"
	}
	l.metrics.RecordLedgerDelta(direction)

	l.logger.Info("Balance delta applied",
		zap.Int64("accountID", cmd.AccountID),
		zap.Int64("delta", cmd.Delta),
		zap.String("cause", cmd.Cause))

	return nil
}
