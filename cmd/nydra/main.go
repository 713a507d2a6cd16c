package main

import (
	"context"
	"log/slog"
	"os"

	"nydra/config"
	"nydra/internal/delivery"
	"nydra/internal/delivery/http"
	"nydra/internal/delivery/http/middleware"
	"nydra/internal/delivery/http/router/handler"
	"nydra/internal/dispatch"
	"nydra/internal/domain/service"
	"nydra/internal/infra/auth"
	logs "nydra/internal/infra/log"
	"nydra/internal/infra/metrics"
	"nydra/internal/infra/notification"
	"nydra/internal/infra/persistence/postgres"
	"nydra/internal/infra/pubsub"
	"nydra/internal/infra/ws"
	"nydra/internal/usecase/impl"

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
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			wireDispatch,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			metrics.NewRegistry,
			metrics.NewDispatchMetrics,
		),
		notification.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCommandRepository,
			postgres.NewDeviceRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			ws.NewHub,
			dispatch.New,
			// The hub is the Pusher the queue and usecases deliver through;
			// the queue is the dispatcher the usecases enqueue into.
			func(h *ws.Hub) service.Pusher { return h },
			func(q *dispatch.Queue) service.CommandDispatcher { return q },
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCommandService,
			impl.NewDeviceService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDeviceHandler,
			handler.NewCommandHandler,
			handler.NewWSHandler,
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

// wireDispatch connects the presence router to the dispatch queue and ties
// the queue's lifetime to the application's.
func wireDispatch(lc fx.Lifecycle, hub *ws.Hub, queue *dispatch.Queue) {
	hub.SetDeviceOnlineListener(queue.NotifyDeviceOnline)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := queue.Rehydrate(ctx); err != nil {
				return err
			}
			queue.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			queue.Stop()

			return nil
		},
	})
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
