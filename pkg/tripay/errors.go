package tripay

import "errors"

const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusUnprocessableEntity = 422
)

const (
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeGatewayRejected    = "GATEWAY_REJECTED"
	ErrCodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ErrCodeTimeout            = "TIMEOUT"
)

var (
	ErrInvalidSignature   = errors.New(ErrCodeInvalidSignature)
	ErrGatewayRejected    = errors.New(ErrCodeGatewayRejected)
	ErrGatewayUnavailable = errors.New(ErrCodeGatewayUnavailable)
	ErrTimeout            = errors.New(ErrCodeTimeout)
)

var statusErrorMap = map[int]error{
	StatusBadRequest:          ErrGatewayRejected,
	StatusUnauthorized:        ErrGatewayRejected,
	StatusUnprocessableEntity: ErrGatewayRejected,
}

func MapStatusToError(statusCode int) error {
	if err, exists := statusErrorMap[statusCode]; exists {
		return err
	}

	return ErrGatewayUnavailable
}
