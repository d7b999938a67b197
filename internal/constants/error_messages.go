package constants

const (
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeAmountTooLow        = "AMOUNT_TOO_LOW"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeAlreadyApplied      = "ALREADY_APPLIED"
	ErrCodeInvalidSignature    = "INVALID_SIGNATURE"
	ErrCodeGatewayUnavailable  = "GATEWAY_UNAVAILABLE"
	ErrCodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	ErrCodeAccountExists       = "ACCOUNT_ALREADY_EXISTS"
	ErrCodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeTopUpNotFound       = "TOPUP_NOT_FOUND"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeSimulationDisabled  = "SIMULATION_DISABLED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeOperationFailed     = "OPERATION_FAILED"
)

const (
	ErrMsgInvalidRequestBody  = "failed to parse request body"
	ErrMsgValidationFailed    = "request validation failed"
	ErrMsgAmountTooLow        = "top up amount is below the configured minimum"
	ErrMsgInvalidStatus       = "status is not a valid value"
	ErrMsgInvalidTransition   = "status transition is not allowed"
	ErrMsgAlreadyApplied      = "event was already applied"
	ErrMsgInvalidSignature    = "callback signature mismatch"
	ErrMsgGatewayUnavailable  = "payment gateway unavailable, request still pending"
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgAccountExists       = "account already exists"
	ErrMsgAccountNotFound     = "account not found"
	ErrMsgProductNotFound     = "product not found"
	ErrMsgTopUpNotFound       = "top up not found"
	ErrMsgTransactionNotFound = "transaction not found"
	ErrMsgSimulationDisabled  = "payment simulation is disabled in production"
	ErrMsgInternalError       = "Internal server error"
	ErrMsgOperationFailed     = "operation failed"
)

var errorMessages = map[string]string{
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
	ErrCodeValidationFailed:    ErrMsgValidationFailed,
	ErrCodeAmountTooLow:        ErrMsgAmountTooLow,
	ErrCodeInvalidStatus:       ErrMsgInvalidStatus,
	ErrCodeInvalidTransition:   ErrMsgInvalidTransition,
	ErrCodeAlreadyApplied:      ErrMsgAlreadyApplied,
	ErrCodeInvalidSignature:    ErrMsgInvalidSignature,
	ErrCodeGatewayUnavailable:  ErrMsgGatewayUnavailable,
	ErrCodeInsufficientBalance: ErrMsgInsufficientBalance,
	ErrCodeAccountExists:       ErrMsgAccountExists,
	ErrCodeAccountNotFound:     ErrMsgAccountNotFound,
	ErrCodeProductNotFound:     ErrMsgProductNotFound,
	ErrCodeTopUpNotFound:       ErrMsgTopUpNotFound,
	ErrCodeTransactionNotFound: ErrMsgTransactionNotFound,
	ErrCodeSimulationDisabled:  ErrMsgSimulationDisabled,
	ErrCodeInternalError:       ErrMsgInternalError,
	ErrCodeOperationFailed:     ErrMsgOperationFailed,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeAmountTooLow, ErrCodeInvalidStatus, ErrCodeInvalidSignature:
		return 400
	case ErrCodeValidationFailed:
		return 422
	case ErrCodeAccountNotFound, ErrCodeProductNotFound, ErrCodeTopUpNotFound,
		ErrCodeTransactionNotFound, ErrCodeSimulationDisabled:
		return 404
	case ErrCodeInvalidTransition, ErrCodeInsufficientBalance, ErrCodeAccountExists, ErrCodeAlreadyApplied:
		return 409
	case ErrCodeGatewayUnavailable:
		return 502
	default:
		return 500
	}
}
