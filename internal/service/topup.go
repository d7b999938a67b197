package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jasenardian/react-digital-clean/internal/config"
	"github.com/jasenardian/react-digital-clean/internal/constants"
	"github.com/jasenardian/react-digital-clean/internal/metrics"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/publishers"
	"github.com/jasenardian/react-digital-clean/internal/repository"
	"github.com/jasenardian/react-digital-clean/internal/statemachine"
	"github.com/jasenardian/react-digital-clean/pkg/tripay"
	"go.uber.org/zap"
)

type TopUpService interface {
	CreateTopUp(ctx context.Context, cmd CreateTopUpCommand) (CreateTopUpResult, error)
	HandleCallback(ctx context.Context, rawBody []byte, signatureHeader string) (CallbackResult, error)
	SimulatePayment(ctx context.Context, cmd SimulatePaymentCommand) (CallbackResult, error)
	History(ctx context.Context, accountID int64) ([]model.TopUp, error)
	PaymentChannels(ctx context.Context) ([]tripay.PaymentChannel, error)
}

type topUp struct {
	topUpRepo   repository.TopUpRepository
	accountRepo repository.AccountRepository
	ledger      LedgerService
	txManager   repository.TxManager
	gateway     tripay.Gateway
	events      publishers.EventPublisher
	cfg         *config.Config
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func NewTopUpService(topUpRepo repository.TopUpRepository, accountRepo repository.AccountRepository,
	ledger LedgerService, txManager repository.TxManager, gateway tripay.Gateway,
	events publishers.EventPublisher, cfg *config.Config, logger *zap.Logger,
	metrics *metrics.Metrics) TopUpService {
	return &topUp{topUpRepo: topUpRepo, accountRepo: accountRepo, ledger: ledger, txManager: txManager,
		gateway: gateway, events: events, cfg: cfg, logger: logger, metrics: metrics}
}

func (s *topUp) CreateTopUp(ctx context.Context, cmd CreateTopUpCommand) (CreateTopUpResult, error) {
	if cmd.Amount < s.cfg.TopUp.MinAmount {
		return CreateTopUpResult{}, NewServiceError(constants.ErrCodeAmountTooLow,
			fmt.Errorf("amount %d is below minimum %d", cmd.Amount, s.cfg.TopUp.MinAmount))
	}

	account, err := s.accountRepo.FindByID(cmd.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return CreateTopUpResult{}, NewServiceError(constants.ErrCodeAccountNotFound, err)
		}
		return CreateTopUpResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	merchantRef := generateMerchantRef(cmd.AccountID)

	topup := model.TopUp{
		AccountID:     cmd.AccountID,
		Amount:        cmd.Amount,
		MerchantRef:   merchantRef,
		PaymentMethod: cmd.PaymentMethod,
		Status:        model.TopUpStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.topUpRepo.Create(ctx, &topup); err != nil {
		s.logger.Error("Failed to create top up request", zap.Error(err))
		return CreateTopUpResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordTopUpCreated()

	request := tripay.CreateTransactionRequest{
		Method:        cmd.PaymentMethod,
		MerchantRef:   merchantRef,
		Amount:        cmd.Amount,
		CustomerName:  account.Username,
		CustomerEmail: account.Email,
		OrderItems: []tripay.OrderItem{
			{SKU: "TOPUP", Name: "Top Up Saldo", Price: cmd.Amount, Quantity: 1},
		},
	}

	gatewayStart := time.Now()
	checkout, err := s.gateway.CreateTransaction(ctx, request)
	if err != nil {
		s.metrics.RecordGatewayRequest("transaction_create", "error", time.Since(gatewayStart))

		// The request stays pending. The payment may still complete upstream
		// and be reconciled by a later callback.
		s.logger.Error("Gateway checkout creation failed, top up left pending",
			zap.Error(err),
			zap.String("merchantRef", merchantRef),
			zap.Int64("accountID", cmd.AccountID))

		return CreateTopUpResult{}, NewServiceError(constants.ErrCodeGatewayUnavailable, err)
	}

	s.metrics.RecordGatewayRequest("transaction_create", "success", time.Since(gatewayStart))

	if err := s.topUpRepo.SetGatewayResult(ctx, topup.ID, checkout.Reference, checkout.CheckoutURL); err != nil {
		s.logger.Error("Failed to store gateway reference",
			zap.Error(err),
			zap.String("merchantRef", merchantRef))
	}

	s.logger.Info("Top up request created",
		zap.Int64("accountID", cmd.AccountID),
		zap.Int64("amount", cmd.Amount),
		zap.String("merchantRef", merchantRef),
		zap.String("reference", checkout.Reference))

	return CreateTopUpResult{
		TopUpID:     topup.ID,
		MerchantRef: merchantRef,
		Reference:   checkout.Reference,
		PaymentURL:  checkout.CheckoutURL,
		Status:      string(model.TopUpStatusPending),
	}, nil
}

func (s *topUp) HandleCallback(ctx context.Context, rawBody []byte, signatureHeader string) (CallbackResult, error) {
	if err := tripay.VerifyCallback(s.cfg.Tripay.PrivateKey, rawBody, signatureHeader); err != nil {
		s.metrics.RecordCallback("invalid_signature")
		s.logger.Warn("Callback rejected: signature mismatch",
			zap.String("signature", signatureHeader))
		return CallbackResult{}, NewServiceError(constants.ErrCodeInvalidSignature, err)
	}

	var payload tripay.CallbackPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		s.metrics.RecordCallback("invalid_body")
		return CallbackResult{}, NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	mapped := tripay.MapStatus(payload.Status)
	if mapped == tripay.PaymentPending {
		// UNPAID and unknown statuses carry no transition.
		s.metrics.RecordCallback("ignored")
		return CallbackResult{Outcome: CallbackIgnored, MerchantRef: payload.MerchantRef}, nil
	}

	result, err := s.applyTransition(ctx, payload.MerchantRef, model.TopUpStatus(mapped), payload.Reference)
	if err != nil {
		return CallbackResult{}, err
	}

	s.metrics.RecordCallback(string(result.Outcome))
	return result, nil
}

func (s *topUp) SimulatePayment(ctx context.Context, cmd SimulatePaymentCommand) (CallbackResult, error) {
	if s.cfg.Tripay.Environment == tripay.EnvironmentProduction {
		return CallbackResult{}, NewServiceError(constants.ErrCodeSimulationDisabled,
			errors.New("simulate payment called in production"))
	}

	target := model.TopUpStatusFailed
	if cmd.Status == string(model.TopUpStatusSuccess) {
		target = model.TopUpStatusSuccess
	}

	return s.applyTransition(ctx, cmd.MerchantRef, target, "")
}

// applyTransition is the single reconciliation path for callbacks and
// simulations: resolve the top up, consult the state machine, then flip the
// status and apply the credit in one transaction.
func (s *topUp) applyTransition(ctx context.Context, merchantRef string, target model.TopUpStatus, gatewayRef string) (CallbackResult, error) {
	topup, err := s.topUpRepo.GetByMerchantRef(merchantRef)
	if err != nil {
		if errors.Is(err, repository.ErrTopUpNotFound) {
			// Unknown references are answered with success so the gateway
			// stops retrying; the mismatch is still visible in the logs.
			s.logger.Warn("Callback for unknown merchant ref",
				zap.String("merchantRef", merchantRef))
			return CallbackResult{Outcome: CallbackUnknownRef, MerchantRef: merchantRef}, nil
		}
		return CallbackResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	effect, err := statemachine.TopUpNext(topup.Status, target)
	if err != nil {
		if errors.Is(err, statemachine.ErrNoTransition) {
			s.logger.Info("Callback replayed for already processed top up",
				zap.String("merchantRef", merchantRef),
				zap.String("status", string(topup.Status)))
			return CallbackResult{Outcome: CallbackReplayed, MerchantRef: merchantRef, Status: topup.Status}, nil
		}

		// Terminal top up receiving a conflicting status. Nothing to do but
		// record it; the gateway still gets a success so it stops retrying.
		s.logger.Warn("Callback requested illegal top up transition",
			zap.String("merchantRef", merchantRef),
			zap.String("from", string(topup.Status)),
			zap.String("to", string(target)))
		return CallbackResult{Outcome: CallbackConflict, MerchantRef: merchantRef, Status: topup.Status}, nil
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		err := s.topUpRepo.UpdateStatusFrom(ctx, topup.ID, topup.Status, target, gatewayRef)
		if err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				// A concurrent callback won the swap; treat as replay.
				return nil
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if effect == statemachine.EffectCredit {
			deltaCmd := ApplyDeltaCommand{
				AccountID: topup.AccountID,
				Delta:     topup.Amount,
				Cause:     fmt.Sprintf("topup:%s:success", merchantRef),
			}

			if err := s.ledger.ApplyDelta(ctx, deltaCmd); err != nil && !errors.Is(err, ErrAlreadyApplied) {
				return NewServiceError(constants.ErrCodeOperationFailed, err)
			}
		}

		return nil
	})
	if err != nil {
		return CallbackResult{}, err
	}

	topup.Status = target
	s.events.PublishTopUpEvent(ctx, topup)

	s.logger.Info("Top up reconciled",
		zap.String("merchantRef", merchantRef),
		zap.String("status", string(target)),
		zap.Int64("accountID", topup.AccountID),
		zap.Int64("amount", topup.Amount))

	return CallbackResult{Outcome: CallbackApplied, MerchantRef: merchantRef, Status: target}, nil
}

func (s *topUp) History(ctx context.Context, accountID int64) ([]model.TopUp, error) {
	topups, err := s.topUpRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return topups, nil
}

func (s *topUp) PaymentChannels(ctx context.Context) ([]tripay.PaymentChannel, error) {
	gatewayStart := time.Now()
	channels, err := s.gateway.ListPaymentChannels(ctx)
	if err != nil {
		s.metrics.RecordGatewayRequest("payment_channel", "error", time.Since(gatewayStart))
		return nil, NewServiceError(constants.ErrCodeGatewayUnavailable, err)
	}

	s.metrics.RecordGatewayRequest("payment_channel", "success", time.Since(gatewayStart))
	return channels, nil
}

func generateMerchantRef(accountID int64) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return fmt.Sprintf("TOPUP-%d-%s", accountID, suffix)
}
