package tripay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jasenardian/react-digital-clean/pkg/httpclient"
)

const (
	createTransactionEndpoint = "/transaction/create"
	paymentChannelEndpoint    = "/merchant/payment-channel"
)

// Gateway is the outbound payment-gateway boundary. Everything that knows
// the Tripay wire format lives behind it.
type Gateway interface {
	CreateTransaction(ctx context.Context, request CreateTransactionRequest) (CreateTransactionResult, error)
	ListPaymentChannels(ctx context.Context) ([]PaymentChannel, error)
}

type gateway struct {
	client httpclient.HTTPClient
	config Config
}

func NewGateway(cfg Config, client httpclient.HTTPClient) Gateway {
	return &gateway{config: cfg, client: client}
}

// SignRequest fills in the signature for an outbound create request.
func (g *gateway) SignRequest(request *CreateTransactionRequest) {
	request.Signature = RequestSignature(g.config.PrivateKey, g.config.MerchantCode,
		request.MerchantRef, request.Amount)
}

func (g *gateway) CreateTransaction(ctx context.Context, request CreateTransactionRequest) (CreateTransactionResult, error) {
	g.SignRequest(&request)

	if request.CallbackURL == "" {
		request.CallbackURL = g.config.CallbackURL
	}
	if request.ReturnURL == "" {
		request.ReturnURL = g.config.ReturnURL
	}
	if request.ExpiredTime == 0 {
		request.ExpiredTime = time.Now().Add(24 * time.Hour).Unix()
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return CreateTransactionResult{}, fmt.Errorf("encoding error: %w", err)
	}

	resp, err := g.client.Post(ctx, g.config.BaseURL()+createTransactionEndpoint, &buf, g.headers())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return CreateTransactionResult{}, ErrTimeout
		}

		return CreateTransactionResult{}, ErrGatewayUnavailable
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return CreateTransactionResult{}, MapStatusToError(resp.StatusCode)
	}

	var response apiResponse[transactionData]
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return CreateTransactionResult{}, fmt.Errorf("decoding error: %w", err)
	}

	if !response.Success {
		return CreateTransactionResult{}, ErrGatewayRejected
	}

	return CreateTransactionResult{
		Reference:   response.Data.Reference,
		CheckoutURL: response.Data.CheckoutURL,
	}, nil
}

func (g *gateway) ListPaymentChannels(ctx context.Context) ([]PaymentChannel, error) {
	resp, err := g.client.Get(ctx, g.config.BaseURL()+paymentChannelEndpoint, g.headers())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}

		return nil, ErrGatewayUnavailable
	}

	defer resp.Body.Close()

	if resp.StatusCode != StatusOK {
		return nil, MapStatusToError(resp.StatusCode)
	}

	var response apiResponse[[]channelData]
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding error: %w", err)
	}

	if !response.Success {
		return nil, ErrGatewayRejected
	}

	channels := make([]PaymentChannel, 0, len(response.Data))
	for _, channel := range response.Data {
		if !channel.Active {
			continue
		}

		channels = append(channels, PaymentChannel{
			Code:    channel.Code,
			Name:    channel.Name,
			Type:    channel.Type,
			FeeFlat: channel.FeeFlat,
			IconURL: channel.IconURL,
		})
	}

	return channels, nil
}

func (g *gateway) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + g.config.APIKey,
		"Content-Type":  "application/json",
	}
}
