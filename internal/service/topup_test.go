package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jasenardian/react-digital-clean/internal/config"
	"github.com/jasenardian/react-digital-clean/internal/constants"
	"github.com/jasenardian/react-digital-clean/internal/mocks"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/repository"
	"github.com/jasenardian/react-digital-clean/internal/service"
	"github.com/jasenardian/react-digital-clean/pkg/tripay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPrivateKey = "test-private-key"

func newTopUpConfig() *config.Config {
	return &config.Config{
		Tripay: tripay.Config{
			Environment:  tripay.EnvironmentSandbox,
			MerchantCode: "T0001",
			PrivateKey:   testPrivateKey,
		},
		TopUp: config.TopUp{MinAmount: 10000},
	}
}

type topUpFixture struct {
	topUps   *mocks.TopUpRepository
	accounts *mocks.AccountRepository
	ledger   *mocks.LedgerService
	txm      *mocks.TxManager
	gateway  *mocks.PaymentGateway
	events   *mocks.EventPublisher
	svc      service.TopUpService
}

func newTopUpFixture(cfg *config.Config) *topUpFixture {
	f := &topUpFixture{
		topUps:   &mocks.TopUpRepository{},
		accounts: &mocks.AccountRepository{},
		ledger:   &mocks.LedgerService{},
		txm:      &mocks.TxManager{},
		gateway:  &mocks.PaymentGateway{},
		events:   &mocks.EventPublisher{},
	}
	f.svc = service.NewTopUpService(f.topUps, f.accounts, f.ledger, f.txm, f.gateway,
		f.events, cfg, zap.NewNop(), newTestMetrics())
	return f
}

func signedCallback(t *testing.T, payload tripay.CallbackPayload) ([]byte, string) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body, tripay.CallbackSignature(testPrivateKey, body)
}

func TestTopUp_CreateTopUp(t *testing.T) {
	cfg := newTopUpConfig()

	cmd := service.CreateTopUpCommand{AccountID: 42, Amount: 50000, PaymentMethod: "QRIS"}

	account := model.Account{ID: 42, Username: "wira", Email: "wira@example.com", Balance: 0,
		Status: model.AccountStatusActive}

	t.Run("Creates pending top up and gateway checkout", func(t *testing.T) {
		f := newTopUpFixture(cfg)

		f.accounts.On("FindByID", int64(42)).Return(account, nil)
		f.topUps.On("Create", context.Background(), mock.MatchedBy(func(topup *model.TopUp) bool {
			return topup.AccountID == 42 &&
				topup.Amount == 50000 &&
				topup.Status == model.TopUpStatusPending
		})).Return(nil)
		f.gateway.On("CreateTransaction", context.Background(),
			mock.MatchedBy(func(req tripay.CreateTransactionRequest) bool {
				return req.Amount == 50000 && req.Method == "QRIS" && req.CustomerName == "wira"
			})).Return(tripay.CreateTransactionResult{
			Reference:   "DEV-T123",
			CheckoutURL: "https://tripay.co.id/checkout/DEV-T123",
		}, nil)
		f.topUps.On("SetGatewayResult", context.Background(), mock.Anything,
			"DEV-T123", "https://tripay.co.id/checkout/DEV-T123").Return(nil)

		result, err := f.svc.CreateTopUp(context.Background(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "DEV-T123", result.Reference)
		assert.Equal(t, string(model.TopUpStatusPending), result.Status)
		assert.Contains(t, result.MerchantRef, "TOPUP-42-")
		f.topUps.AssertExpectations(t)
		f.gateway.AssertExpectations(t)
	})

	t.Run("Rejects amount below minimum before persisting", func(t *testing.T) {
		f := newTopUpFixture(cfg)

		_, err := f.svc.CreateTopUp(context.Background(), service.CreateTopUpCommand{
			AccountID: 42, Amount: 9999, PaymentMethod: "QRIS",
		})

		var svcErr service.Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeAmountTooLow, svcErr.Code)
		f.topUps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.gateway.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
	})

	t.Run("Leaves top up pending when gateway is down", func(t *testing.T) {
		f := newTopUpFixture(cfg)

		f.accounts.On("FindByID", int64(42)).Return(account, nil)
		f.topUps.On("Create", context.Background(), mock.Anything).Return(nil)
		f.gateway.On("CreateTransaction", context.Background(), mock.Anything).
			Return(tripay.CreateTransactionResult{}, tripay.ErrGatewayUnavailable)

		_, err := f.svc.CreateTopUp(context.Background(), cmd)

		var svcErr service.Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeGatewayUnavailable, svcErr.Code)
		f.topUps.AssertNotCalled(t, "SetGatewayResult",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects unknown account", func(t *testing.T) {
		f := newTopUpFixture(cfg)

		f.accounts.On("FindByID", int64(42)).Return(model.Account{}, repository.ErrAccountNotFound)

		_, err := f.svc.CreateTopUp(context.Background(), cmd)

		var svcErr service.Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeAccountNotFound, svcErr.Code)
	})
}

func TestTopUp_HandleCallback(t *testing.T) {
	cfg := newTopUpConfig()

	pending := func() *model.TopUp {
		return &model.TopUp{
			ID:          7,
			AccountID:   42,
			Amount:      50000,
			MerchantRef: "TOPUP-42-ABCDEF123456",
			Status:      model.TopUpStatusPending,
		}
	}

	t.Run("Credits balance exactly once on paid callback", func(t *testing.T) {
		f := newTopUpFixture(cfg)
		topup := pending()

		body, signature := signedCallback(t, tripay.CallbackPayload{
			Reference:   "DEV-T123",
			MerchantRef: topup.MerchantRef,
			Status:      tripay.StatusPaid,
		})

		f.topUps.On("GetByMerchantRef", topup.MerchantRef).Return(topup, nil)
		f.txm.On("WithTx", context.Background(), mock.Anything).Return(nil)
		f.topUps.On("UpdateStatusFrom", mock.Anything, int64(7),
			model.TopUpStatusPending, model.TopUpStatusSuccess, "DEV-T123").Return(nil)
		f.ledger.On("ApplyDelta", mock.Anything, service.ApplyDeltaCommand{
			AccountID: 42,
			Delta:     50000,
			Cause:     "topup:TOPUP-42-ABCDEF123456:success",
		}).Return(nil)
		f.events.On("PublishTopUpEvent", context.Background(), mock.Anything).Return()

		result, err := f.svc.HandleCallback(context.Background(), body, signature)

		require.NoError(t, err)
		assert.Equal(t, service.CallbackApplied, result.Outcome)
		assert.Equal(t, model.TopUpStatusSuccess, result.Status)
		f.ledger.AssertNumberOfCalls(t, "ApplyDelta", 1)
		f.topUps.AssertExpectations(t)
	})

	t.Run("Replayed callback does not touch the ledger", func(t *testing.T) {
		f := newTopUpFixture(cfg)
		topup := pending()
		topup.Status = model.TopUpStatusSuccess

		body, signature := signedCallback(t, tripay.CallbackPayload{
			MerchantRef: topup.MerchantRef,
			Status:      tripay.StatusPaid,
		})

		f.topUps.On("GetByMerchantRef", topup.MerchantRef).Return(topup, nil)

		result, err := f.svc.HandleCallback(context.Background(), body, signature)

		require.NoError(t, err)
		assert.Equal(t, service.CallbackReplayed, result.Outcome)
		f.ledger.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything)
		f.topUps.AssertNotCalled(t, "UpdateStatusFrom",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects tampered signature without touching storage", func(t *testing.T) {
		f := newTopUpFixture(cfg)

		body, _ := signedCallback(t, tripay.CallbackPayload{
			MerchantRef: "TOPUP-42-ABCDEF123456",
			Status:      tripay.StatusPaid,
		})

		_, err := f.svc.HandleCallback(context.Background(), body, "deadbeef")

		var svcErr service.Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeInvalidSignature, svcErr.Code)
		f.topUps.AssertNotCalled(t, "GetByMerchantRef", mock.Anything)
		f.ledger.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything)
	})

	t.Run("Unknown merchant ref resolves without error", func(t *testing.T) {
		f := newTopUpFixture(cfg)

		body, signature := signedCallback(t, tripay.CallbackPayload{
			MerchantRef: "TOPUP-99-UNKNOWN",
			Status:      tripay.StatusPaid,
		})

		f.topUps.On("GetByMerchantRef", "TOPUP-99-UNKNOWN").Return(nil, repository.ErrTopUpNotFound)

		result, err := f.svc.HandleCallback(context.Background(), body, signature)

		require.NoError(t, err)
		assert.Equal(t, service.CallbackUnknownRef, result.Outcome)
	})

	t.Run("Unpaid status is ignored", func(t *testing.T) {
		f := newTopUpFixture(cfg)

		body, signature := signedCallback(t, tripay.CallbackPayload{
			MerchantRef: "TOPUP-42-ABCDEF123456",
			Status:      tripay.StatusUnpaid,
		})

		result, err := f.svc.HandleCallback(context.Background(), body, signature)

		require.NoError(t, err)
		assert.Equal(t, service.CallbackIgnored, result.Outcome)
		f.topUps.AssertNotCalled(t, "GetByMerchantRef", mock.Anything)
	})

	t.Run("Expired callback fails the top up without credit", func(t *testing.T) {
		f := newTopUpFixture(cfg)
		topup := pending()

		body, signature := signedCallback(t, tripay.CallbackPayload{
			MerchantRef: topup.MerchantRef,
			Status:      tripay.StatusExpired,
		})

		f.topUps.On("GetByMerchantRef", topup.MerchantRef).Return(topup, nil)
		f.txm.On("WithTx", context.Background(), mock.Anything).Return(nil)
		f.topUps.On("UpdateStatusFrom", mock.Anything, int64(7),
			model.TopUpStatusPending, model.TopUpStatusFailed, "").Return(nil)
		f.events.On("PublishTopUpEvent", context.Background(), mock.Anything).Return()

		result, err := f.svc.HandleCallback(context.Background(), body, signature)

		require.NoError(t, err)
		assert.Equal(t, service.CallbackApplied, result.Outcome)
		assert.Equal(t, model.TopUpStatusFailed, result.Status)
		f.ledger.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything)
	})

	t.Run("Concurrent callback losing the swap is treated as replay", func(t *testing.T) {
		f := newTopUpFixture(cfg)
		topup := pending()

		body, signature := signedCallback(t, tripay.CallbackPayload{
			MerchantRef: topup.MerchantRef,
			Status:      tripay.StatusPaid,
		})

		f.topUps.On("GetByMerchantRef", topup.MerchantRef).Return(topup, nil)
		f.txm.On("WithTx", context.Background(), mock.Anything).Return(nil)
		f.topUps.On("UpdateStatusFrom", mock.Anything, int64(7),
			model.TopUpStatusPending, model.TopUpStatusSuccess, "").
			Return(repository.ErrNoRowsAffected)
		f.events.On("PublishTopUpEvent", context.Background(), mock.Anything).Return()

		result, err := f.svc.HandleCallback(context.Background(), body, signature)

		require.NoError(t, err)
		assert.Equal(t, service.CallbackApplied, result.Outcome)
		f.ledger.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything)
	})

	t.Run("Callback on failed top up is a conflict", func(t *testing.T) {
		f := newTopUpFixture(cfg)
		topup := pending()
		topup.Status = model.TopUpStatusFailed

		body, signature := signedCallback(t, tripay.CallbackPayload{
			MerchantRef: topup.MerchantRef,
			Status:      tripay.StatusPaid,
		})

		f.topUps.On("GetByMerchantRef", topup.MerchantRef).Return(topup, nil)

		result, err := f.svc.HandleCallback(context.Background(), body, signature)

		require.NoError(t, err)
		assert.Equal(t, service.CallbackConflict, result.Outcome)
		f.ledger.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything)
	})
}

func TestTopUp_SimulatePayment(t *testing.T) {
	t.Run("Refused in production", func(t *testing.T) {
		cfg := newTopUpConfig()
		cfg.Tripay.Environment = tripay.EnvironmentProduction
		f := newTopUpFixture(cfg)

		_, err := f.svc.SimulatePayment(context.Background(), service.SimulatePaymentCommand{
			MerchantRef: "TOPUP-42-ABCDEF123456",
			Status:      "success",
		})

		var svcErr service.Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, constants.ErrCodeSimulationDisabled, svcErr.Code)
		f.topUps.AssertNotCalled(t, "GetByMerchantRef", mock.Anything)
	})

	t.Run("Simulated success credits the balance", func(t *testing.T) {
		f := newTopUpFixture(newTopUpConfig())
		topup := &model.TopUp{
			ID:          7,
			AccountID:   42,
			Amount:      25000,
			MerchantRef: "TOPUP-42-ABCDEF123456",
			Status:      model.TopUpStatusPending,
		}

		f.topUps.On("GetByMerchantRef", topup.MerchantRef).Return(topup, nil)
		f.txm.On("WithTx", context.Background(), mock.Anything).Return(nil)
		f.topUps.On("UpdateStatusFrom", mock.Anything, int64(7),
			model.TopUpStatusPending, model.TopUpStatusSuccess, "").Return(nil)
		f.ledger.On("ApplyDelta", mock.Anything, mock.MatchedBy(func(cmd service.ApplyDeltaCommand) bool {
			return cmd.AccountID == 42 && cmd.Delta == 25000
		})).Return(nil)
		f.events.On("PublishTopUpEvent", context.Background(), mock.Anything).Return()

		result, err := f.svc.SimulatePayment(context.Background(), service.SimulatePaymentCommand{
			MerchantRef: topup.MerchantRef,
			Status:      "success",
		})

		require.NoError(t, err)
		assert.Equal(t, service.CallbackApplied, result.Outcome)
		f.ledger.AssertNumberOfCalls(t, "ApplyDelta", 1)
	})
}

func TestTopUp_HandleCallback_InvalidBody(t *testing.T) {
	f := newTopUpFixture(newTopUpConfig())

	body := []byte("{not-json")
	signature := tripay.CallbackSignature(testPrivateKey, body)

	_, err := f.svc.HandleCallback(context.Background(), body, signature)

	var svcErr service.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, constants.ErrCodeInvalidRequestBody, svcErr.Code)
}

func TestTopUp_LedgerFailureRollsBackTransition(t *testing.T) {
	f := newTopUpFixture(newTopUpConfig())
	topup := &model.TopUp{
		ID:          7,
		AccountID:   42,
		Amount:      50000,
		MerchantRef: "TOPUP-42-ABCDEF123456",
		Status:      model.TopUpStatusPending,
	}

	body, signature := signedCallback(t, tripay.CallbackPayload{
		MerchantRef: topup.MerchantRef,
		Status:      tripay.StatusPaid,
	})

	f.topUps.On("GetByMerchantRef", topup.MerchantRef).Return(topup, nil)
	f.txm.On("WithTx", context.Background(), mock.Anything).Return(nil)
	f.topUps.On("UpdateStatusFrom", mock.Anything, int64(7),
		model.TopUpStatusPending, model.TopUpStatusSuccess, "").Return(nil)
	f.ledger.On("ApplyDelta", mock.Anything, mock.Anything).Return(errors.New("deadlock"))

	_, err := f.svc.HandleCallback(context.Background(), body, signature)

	var svcErr service.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, constants.ErrCodeOperationFailed, svcErr.Code)
	f.events.AssertNotCalled(t, "PublishTopUpEvent", mock.Anything, mock.Anything)
}
