package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/pastaprego-backend/api/routes"
	"github.com/angelmondragon/pastaprego-backend/internal/cart"
	"github.com/angelmondragon/pastaprego-backend/internal/catalog"
	"github.com/angelmondragon/pastaprego-backend/internal/effects"
	"github.com/angelmondragon/pastaprego-backend/internal/orders"
	"github.com/angelmondragon/pastaprego-backend/internal/pricing"
	"github.com/angelmondragon/pastaprego-backend/pkg/config"
	"github.com/angelmondragon/pastaprego-backend/pkg/logger"
	"github.com/angelmondragon/pastaprego-backend/pkg/metrics"
	"github.com/angelmondragon/pastaprego-backend/pkg/redis"
	"github.com/angelmondragon/pastaprego-backend/pkg/storage"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// config validation already requires redis for the redis storage driver
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(runCtx, cfg.Redis, logg)
		if err != nil {
			logg.Error(runCtx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
	}

	backend, err := storage.Open(runCtx, cfg, logg, redisClient)
	if err != nil {
		logg.Error(runCtx, "failed to open cart storage", err)
		closeAll(logg, redisClient, nil)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefront(reg)

	menu := catalog.Default()
	engine := pricing.NewEngine(types.Money(cfg.Storefront.DeliveryFeeCents))

	registry, err := cart.NewRegistry(backend, cfg.Storage.Record, cart.Options{
		Logger:  logg,
		Metrics: storefrontMetrics,
		MaxOpen: cfg.Storefront.MaxOpenCarts,
	})
	requireResource(runCtx, logg, "cart registry", err)

	cartService, err := cart.NewService(registry, menu, engine)
	requireResource(runCtx, logg, "cart service", err)

	assembler, err := orders.NewAssembler(engine, orders.NewNumberGenerator(cfg.Storefront.OrderPrefix), orders.AssemblerOptions{
		Logger:  logg,
		Metrics: storefrontMetrics,
	})
	requireResource(runCtx, logg, "order assembler", err)

	ordersService, err := orders.NewService(cartService, assembler, orders.NewConfirmations(cfg.Storefront.MaxOpenCarts))
	requireResource(runCtx, logg, "orders service", err)

	transitions := effects.NewQueue(cfg.Storefront.TransitionDelay)
	defer transitions.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"storage_driver": cfg.Storage.DriverKind().String(),
		"redis":          redisClient != nil,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, storefrontMetrics, reg, backend, redisClient, menu, cartService, transitions, ordersService),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
		exitCode = 1
	}

	if err := closeAll(logg, redisClient, backend); err != nil {
		exitCode = 1
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	logg.Info(ctx, "api server stopped")
}

// closeAll releases storage before redis since the redis driver shares the client.
func closeAll(logg *logger.Logger, redisClient *redis.Client, backend storage.Store) error {
	var err error
	if backend != nil {
		err = multierr.Append(err, backend.Close())
	}
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	if err != nil {
		logg.Error(context.Background(), "error closing resources", err)
	}
	return err
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to initialise "+name, err)
	os.Exit(1)
}
