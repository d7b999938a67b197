package main

import (
	"context"
	"time"

	playValidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jasenardian/react-digital-clean/internal/api"
	v1 "github.com/jasenardian/react-digital-clean/internal/api/v1"
	"github.com/jasenardian/react-digital-clean/internal/api/validator"
	"github.com/jasenardian/react-digital-clean/internal/config"
	"github.com/jasenardian/react-digital-clean/internal/database"
	appErrors "github.com/jasenardian/react-digital-clean/internal/errors"
	"github.com/jasenardian/react-digital-clean/internal/metrics"
	"github.com/jasenardian/react-digital-clean/internal/publishers"
	"github.com/jasenardian/react-digital-clean/internal/repository"
	"github.com/jasenardian/react-digital-clean/internal/service"
	"github.com/jasenardian/react-digital-clean/pkg/httpclient"
	"github.com/jasenardian/react-digital-clean/pkg/mq"
	"github.com/jasenardian/react-digital-clean/pkg/tripay"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			database.NewConnection,
			newFiberApp,
			newGateway,
			newEventPublisher,
			playValidator.New,
			validator.NewXValidator,
			repository.NewTransactionManager,
			repository.NewAccountRepository,
			repository.NewLedgerEntryRepository,
			repository.NewTopUpRepository,
			repository.NewTransactionRepository,
			repository.NewProductRepository,
			service.NewLedgerService,
			service.NewAccountService,
			service.NewTopUpService,
			service.NewTransactionService,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func newFiberApp(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: appErrors.ErrorHandler(),
	})
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	return app
}

func newGateway(cfg *config.Config) tripay.Gateway {
	client := httpclient.NewHTTPClient(cfg.Tripay.Timeout)
	return tripay.NewGateway(cfg.Tripay, client)
}

func newEventPublisher(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (publishers.EventPublisher, error) {
	rabbit, err := mq.NewConnection(cfg.MQ, logger)
	if err != nil {
		return nil, err
	}

	publisher, err := rabbit.CreatePublisher()
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return rabbit.Close()
		},
	})

	return publishers.NewEventPublisher(publisher, logger), nil
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	})
}
