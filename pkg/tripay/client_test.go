package tripay_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jasenardian/react-digital-clean/pkg/mocks"
	"github.com/jasenardian/react-digital-clean/pkg/tripay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = tripay.Config{
	Environment:  tripay.EnvironmentSandbox,
	MerchantCode: "T0001",
	APIKey:       "api-key",
	PrivateKey:   "private-key",
	CallbackURL:  "https://store.test/v1/topup/callback",
	ReturnURL:    "https://store.test/topup/finish",
	Timeout:      15 * time.Second,
}

const (
	createURL   = "https://tripay.co.id/api-sandbox/transaction/create"
	channelsURL = "https://tripay.co.id/api-sandbox/merchant/payment-channel"
)

var expectedHeaders = map[string]string{
	"Authorization": "Bearer api-key",
	"Content-Type":  "application/json",
}

func decodeRequestBody(body interface{}) (tripay.CreateTransactionRequest, bool) {
	buf, ok := body.(*bytes.Buffer)
	if !ok {
		return tripay.CreateTransactionRequest{}, false
	}

	var req tripay.CreateTransactionRequest
	if err := json.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&req); err != nil {
		return tripay.CreateTransactionRequest{}, false
	}

	return req, true
}

func TestGateway_CreateTransaction(t *testing.T) {
	request := tripay.CreateTransactionRequest{
		Method:       "QRIS",
		MerchantRef:  "TOPUP-42-ABCDEF123456",
		Amount:       50000,
		CustomerName: "wira",
	}

	t.Run("Signs and posts the checkout request", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gw := tripay.NewGateway(testConfig, mockClient)

		body := `{
			"success": true,
			"data": {
				"reference": "DEV-T123",
				"merchant_ref": "TOPUP-42-ABCDEF123456",
				"checkout_url": "https://tripay.co.id/checkout/DEV-T123",
				"status": "UNPAID"
			}
		}`

		expectedSignature := tripay.RequestSignature("private-key", "T0001",
			request.MerchantRef, request.Amount)

		mockClient.On("Post", context.Background(), createURL,
			mock.MatchedBy(func(body interface{}) bool {
				req, ok := decodeRequestBody(body)
				return ok &&
					req.Signature == expectedSignature &&
					req.CallbackURL == testConfig.CallbackURL &&
					req.ReturnURL == testConfig.ReturnURL &&
					req.ExpiredTime > 0
			}), expectedHeaders).Return(&http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil)

		result, err := gw.CreateTransaction(context.Background(), request)

		require.NoError(t, err)
		assert.Equal(t, "DEV-T123", result.Reference)
		assert.Equal(t, "https://tripay.co.id/checkout/DEV-T123", result.CheckoutURL)
		mockClient.AssertExpectations(t)
	})

	t.Run("Timeout", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gw := tripay.NewGateway(testConfig, mockClient)

		mockClient.On("Post", context.Background(), createURL, mock.Anything, expectedHeaders).
			Return((*http.Response)(nil), context.DeadlineExceeded)

		_, err := gw.CreateTransaction(context.Background(), request)

		assert.ErrorIs(t, err, tripay.ErrTimeout)
	})

	t.Run("Network error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gw := tripay.NewGateway(testConfig, mockClient)

		mockClient.On("Post", context.Background(), createURL, mock.Anything, expectedHeaders).
			Return((*http.Response)(nil), errors.New("connection refused"))

		_, err := gw.CreateTransaction(context.Background(), request)

		assert.ErrorIs(t, err, tripay.ErrGatewayUnavailable)
	})

	t.Run("Rejected request", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gw := tripay.NewGateway(testConfig, mockClient)

		mockClient.On("Post", context.Background(), createURL, mock.Anything, expectedHeaders).
			Return(&http.Response{
				StatusCode: 400,
				Body:       io.NopCloser(strings.NewReader(`{"success":false}`)),
			}, nil)

		_, err := gw.CreateTransaction(context.Background(), request)

		assert.ErrorIs(t, err, tripay.ErrGatewayRejected)
	})

	t.Run("Success flag false", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gw := tripay.NewGateway(testConfig, mockClient)

		mockClient.On("Post", context.Background(), createURL, mock.Anything, expectedHeaders).
			Return(&http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(`{"success":false,"message":"channel closed"}`)),
			}, nil)

		_, err := gw.CreateTransaction(context.Background(), request)

		assert.ErrorIs(t, err, tripay.ErrGatewayRejected)
	})
}

func TestGateway_ListPaymentChannels(t *testing.T) {
	t.Run("Returns only active channels", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gw := tripay.NewGateway(testConfig, mockClient)

		body := `{
			"success": true,
			"data": [
				{"code": "QRIS", "name": "QRIS", "type": "qris", "fee_flat": 750, "active": true},
				{"code": "BRIVA", "name": "BRI Virtual Account", "type": "va", "fee_flat": 4000, "active": false}
			]
		}`

		mockClient.On("Get", context.Background(), channelsURL, expectedHeaders).
			Return(&http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(body)),
			}, nil)

		channels, err := gw.ListPaymentChannels(context.Background())

		require.NoError(t, err)
		require.Len(t, channels, 1)
		assert.Equal(t, "QRIS", channels[0].Code)
		assert.Equal(t, int64(750), channels[0].FeeFlat)
	})

	t.Run("Unavailable", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gw := tripay.NewGateway(testConfig, mockClient)

		mockClient.On("Get", context.Background(), channelsURL, expectedHeaders).
			Return((*http.Response)(nil), errors.New("connection refused"))

		_, err := gw.ListPaymentChannels(context.Background())

		assert.ErrorIs(t, err, tripay.ErrGatewayUnavailable)
	})
}

func TestMapStatusToError(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		expectedError error
	}{
		{name: "BadRequest", statusCode: 400, expectedError: tripay.ErrGatewayRejected},
		{name: "Unauthorized", statusCode: 401, expectedError: tripay.ErrGatewayRejected},
		{name: "UnprocessableEntity", statusCode: 422, expectedError: tripay.ErrGatewayRejected},
		{name: "InternalServerError", statusCode: 500, expectedError: tripay.ErrGatewayUnavailable},
		{name: "BadGateway", statusCode: 502, expectedError: tripay.ErrGatewayUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tripay.MapStatusToError(tc.statusCode)
			assert.Equal(t, tc.expectedError, err)
		})
	}
}
