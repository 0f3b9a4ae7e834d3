package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"plantheon/config"
	"plantheon/internal/delivery"
	"plantheon/internal/delivery/http"
	httpmiddleware "plantheon/internal/delivery/http/middleware"
	"plantheon/internal/delivery/http/router/handler"
	deliverymiddleware "plantheon/internal/delivery/middleware"
	"plantheon/internal/infra/auth/google"
	"plantheon/internal/infra/catalog"
	logs "plantheon/internal/infra/log"
	"plantheon/internal/infra/persistence/sqlite"
	"plantheon/internal/usecase"
	"plantheon/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			restoreSession,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		sqlite.New,
		catalog.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			sqlite.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			google.NewOAuthService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewBookingService,
			impl.NewAccountService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewSessionMiddleware,
			httpmiddleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewGardenHandler,
			handler.NewBookingHandler,
			handler.NewAccountHandler,
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

// restoreSession runs before the server starts serving, so a signed-in user
// never sees an anonymous flash after a restart.
func restoreSession(ctx context.Context, auth usecase.AuthUsecase) error {
	return auth.RestoreSession(ctx)
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
