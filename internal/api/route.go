package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jasenardian/react-digital-clean/internal/api/middleware"
	v1 "github.com/jasenardian/react-digital-clean/internal/api/v1"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler, logger *zap.Logger) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/v1/accounts", handler.RegisterAccount)

	authed := middleware.RequireAccount(logger)

	app.Get("/v1/accounts/balance", authed, handler.GetBalance)

	app.Post("/v1/topup", authed, handler.CreateTopUp)
	app.Get("/v1/topup/history", authed, handler.TopUpHistory)
	app.Get("/v1/topup/channels", authed, handler.PaymentChannels)
	app.Post("/v1/topup/callback", handler.TopUpCallback)
	app.Post("/v1/topup/simulate", handler.SimulatePayment)

	app.Post("/v1/transactions", authed, handler.Checkout)
	app.Get("/v1/transactions/history", authed, handler.TransactionHistory)
	app.Put("/v1/admin/transactions/:id/status", authed, handler.UpdateTransactionStatus)
}
