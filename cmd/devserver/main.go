// Command devserver runs a local stub of the PrimeForm backend: the full API
// surface the client coordinates against, backed by in-memory state.
package main

import (
	"context"
	"log/slog"
	"os"

	"primeform/config"
	"primeform/internal/delivery"
	"primeform/internal/delivery/http"
	"primeform/internal/delivery/http/middleware"
	"primeform/internal/delivery/http/router/handler"
	"primeform/internal/domain/service"
	"primeform/internal/errors"
	"primeform/internal/infra/auth"
	logs "primeform/internal/infra/log"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewStore,
			newTokenIssuer,
		),
	)
}

// newTokenIssuer mints stub tokens with the dev server's signing secret.
func newTokenIssuer(cfg *config.Config) (service.TokenIssuer, error) {
	if cfg.DevServer == nil {
		return nil, errors.New("devServer configuration is required")
	}

	return auth.NewTokenIssuer(cfg.DevServer.Secret)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewPlanHandler,
			handler.NewProgressHandler,
			handler.NewSubscriptionHandler,
			handler.NewNotificationHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
