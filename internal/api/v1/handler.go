package v1

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jasenardian/react-digital-clean/internal/api/middleware"
	"github.com/jasenardian/react-digital-clean/internal/api/validator"
	"github.com/jasenardian/react-digital-clean/internal/constants"
	"github.com/jasenardian/react-digital-clean/internal/model"
	"github.com/jasenardian/react-digital-clean/internal/service"
	"go.uber.org/zap"
)

const callbackSignatureHeader = "X-Callback-Signature"

type Handler struct {
	logger       *zap.Logger
	accounts     service.AccountService
	topUps       service.TopUpService
	transactions service.TransactionService
	validator    validator.IXValidator
}

func NewHandler(logger *zap.Logger, accounts service.AccountService, topUps service.TopUpService,
	transactions service.TransactionService, validator validator.IXValidator) *Handler {
	return &Handler{logger: logger, accounts: accounts, topUps: topUps,
		transactions: transactions, validator: validator}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) RegisterAccount(c *fiber.Ctx) error {
	var request RegisterAccountRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	acc, err := h.accounts.Register(c.UserContext(), service.RegisterAccountCommand{
		Username: request.Username,
		Email:    request.Email,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(AccountResponse{
		AccountID: acc.ID,
		Username:  acc.Username,
		Balance:   acc.Balance,
		Status:    string(acc.Status),
	})
}

func (h *Handler) GetBalance(c *fiber.Ctx) error {
	accountID := middleware.AccountID(c)

	acc, err := h.accounts.GetBalance(c.UserContext(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(AccountResponse{
		AccountID: acc.ID,
		Username:  acc.Username,
		Balance:   acc.Balance,
		Status:    string(acc.Status),
	})
}

func (h *Handler) CreateTopUp(c *fiber.Ctx) error {
	var request CreateTopUpRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	cmd := service.CreateTopUpCommand{
		AccountID:     middleware.AccountID(c),
		Amount:        request.Amount,
		PaymentMethod: request.PaymentMethod,
	}

	result, err := h.topUps.CreateTopUp(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"merchant_ref": result.MerchantRef,
		"reference":    result.Reference,
		"payment_url":  result.PaymentURL,
		"status":       result.Status,
	})
}

// TopUpCallback receives the gateway webhook. Any outcome after a verified
// signature answers 200 so the gateway stops retrying; replays and unknown
// references are already safe no-ops in the service.
func (h *Handler) TopUpCallback(c *fiber.Ctx) error {
	rawBody := c.Body()
	signature := c.Get(callbackSignatureHeader)

	result, err := h.topUps.HandleCallback(c.UserContext(), rawBody, signature)
	if err != nil {
		return err
	}

	h.logger.Info("Callback processed",
		zap.String("merchantRef", result.MerchantRef),
		zap.String("outcome", string(result.Outcome)))

	return c.JSON(CallbackResponse{Success: true})
}

func (h *Handler) SimulatePayment(c *fiber.Ctx) error {
	var request SimulatePaymentRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	cmd := service.SimulatePaymentCommand{
		MerchantRef: request.MerchantRef,
		Status:      request.Status,
	}

	result, err := h.topUps.SimulatePayment(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(CallbackResponse{Success: true, Message: "payment " + string(result.Outcome)})
}

func (h *Handler) TopUpHistory(c *fiber.Ctx) error {
	topups, err := h.topUps.History(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return err
	}

	data := make([]TopUpResponse, 0, len(topups))
	for _, t := range topups {
		data = append(data, TopUpResponse{
			TopUpID:       t.ID,
			Amount:        t.Amount,
			MerchantRef:   t.MerchantRef,
			PaymentMethod: t.PaymentMethod,
			Status:        string(t.Status),
			CreatedAt:     t.CreatedAt,
		})
	}

	return c.JSON(ListResponse[TopUpResponse]{Success: true, Data: data, Total: len(data)})
}

func (h *Handler) PaymentChannels(c *fiber.Ctx) error {
	channels, err := h.topUps.PaymentChannels(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": channels})
}

func (h *Handler) Checkout(c *fiber.Ctx) error {
	var request CheckoutRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	cmd := service.CheckoutCommand{
		AccountID: middleware.AccountID(c),
		ProductID: request.ProductID,
		Quantity:  request.Quantity,
		Notes:     request.Notes,
	}

	result, err := h.transactions.Checkout(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":          true,
		"transaction_id":   result.TransactionID,
		"transaction_code": result.TransactionCode,
		"amount":           result.Amount,
		"status":           result.Status,
	})
}

func (h *Handler) TransactionHistory(c *fiber.Ctx) error {
	trxs, err := h.transactions.History(c.UserContext(), middleware.AccountID(c))
	if err != nil {
		return err
	}

	data := make([]TransactionResponse, 0, len(trxs))
	for _, t := range trxs {
		data = append(data, TransactionResponse{
			TransactionID:   t.ID,
			ProductID:       t.ProductID,
			Amount:          t.Amount,
			Quantity:        t.Quantity,
			Status:          string(t.Status),
			TransactionCode: t.TransactionCode,
			CreatedAt:       t.CreatedAt,
		})
	}

	return c.JSON(ListResponse[TransactionResponse]{Success: true, Data: data, Total: len(data)})
}

func (h *Handler) UpdateTransactionStatus(c *fiber.Ctx) error {
	transactionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || transactionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": "transaction id must be a positive integer",
		})
	}

	var request UpdateTransactionStatusRequest
	if err := h.parseAndValidate(c, &request); err != nil {
		return err
	}

	if !model.ValidTransactionStatus(request.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidStatus,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidStatus),
		})
	}

	cmd := service.UpdateStatusCommand{
		TransactionID: transactionID,
		NewStatus:     model.TransactionStatus(request.Status),
		Actor:         strconv.FormatInt(middleware.AccountID(c), 10),
		AdminNotes:    request.AdminNotes,
	}

	result, err := h.transactions.UpdateStatus(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	message := "transaction status updated to " + string(result.Status)
	if result.Replayed {
		message = "transaction already in status " + string(result.Status)
	}

	return c.JSON(fiber.Map{"success": true, "message": message})
}

func (h *Handler) parseAndValidate(c *fiber.Ctx, request interface{}) error {
	if err := c.BodyParser(request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("path", c.Path()))
		return service.NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	if errs := h.validator.Validate(request); len(errs) > 0 {
		h.logger.Warn("Request validation failed",
			zap.String("path", c.Path()),
			zap.String("fields", h.validator.Message(errs)))
		return service.NewServiceError(constants.ErrCodeValidationFailed, errors.New(h.validator.Message(errs)))
	}

	return nil
}
