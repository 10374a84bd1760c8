package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/you-humble/spare-parts/internal/config"
	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/internal/transport/http/health"
	"github.com/you-humble/spare-parts/platform/closer"
	"github.com/you-humble/spare-parts/platform/logger"
)

type app struct {
	di         *di
	server     *http.Server
	grpcServer *grpc.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initSnapshot,
		a.initServer,
		a.initGRPCServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

// initSnapshot makes the first dataset visible before any listener starts.
// A missing or broken source still starts the service with an empty snapshot.
func (a *app) initSnapshot(ctx context.Context) error {
	snap := a.di.InventoryService(ctx).Reload(ctx)
	logger.Info(ctx, "📦 initial snapshot loaded",
		logger.String("source", snap.Source),
		logger.Int("records", snap.Len()),
	)
	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.HandleFunc("/health", health.HealthCheck(a.di.InventoryService(ctx)))
	r.Handle("/metrics", promhttp.Handler())

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}

	closer.AddNamed("HTTP Server", func(ctx context.Context) error {
		return a.server.Shutdown(ctx)
	})
	return nil
}

func (a *app) initGRPCServer(ctx context.Context) error {
	if !config.C().GRPC.Enabled() {
		return nil
	}

	a.grpcServer = a.di.GRPCServer(ctx)
	closer.AddNamed("gRPC Server", func(context.Context) error {
		a.grpcServer.GracefulStop()
		return nil
	})
	return nil
}

func (a *app) run(ctx context.Context) error {
	defer gracefulShutdown()

	cfg := config.C()
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 inventory http server listening",
			logger.String("address", cfg.Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	if a.grpcServer != nil {
		eg.Go(func() error {
			lis, err := net.Listen("tcp", cfg.GRPC.Address())
			if err != nil {
				return err
			}

			logger.Info(egCtx,
				"🚀 inventory grpc server listening",
				logger.String("address", cfg.GRPC.Address()),
			)
			if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return err
			}
			return nil
		})
	}

	if cfg.Source.Watch() {
		eg.Go(func() error {
			return a.di.Watcher(egCtx).Run(egCtx)
		})
	}

	if cfg.Sync.Interval() > 0 {
		eg.Go(func() error {
			return a.di.SyncService(egCtx).RunPeriodic(egCtx, cfg.Sync.Interval())
		})
	}

	if cfg.Kafka.Enabled() {
		eg.Go(func() error {
			logger.Info(egCtx,
				"🚀 source consumer running",
				logger.Any("kafka_brokers", cfg.Kafka.Brokers()),
			)
			err := a.di.SourceConsumer(egCtx).RunSourceUpdatedConsume(egCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	// listeners only return once their servers are shut down
	eg.Go(func() error {
		<-egCtx.Done()
		gracefulShutdown()
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Server stopped")
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}

// SyncOnce runs a single sync against the configured source and exits without serving.
func SyncOnce(ctx context.Context) (model.SyncResult, error) {
	a := &app{}
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
	}
	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return model.SyncResult{}, err
		}
	}
	defer gracefulShutdown()

	return a.di.SyncService(ctx).Sync(ctx)
}
