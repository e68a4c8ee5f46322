package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/tourbay/storefront/api/routes"
	cartsvc "github.com/tourbay/storefront/internal/cart"
	catalogsvc "github.com/tourbay/storefront/internal/catalog"
	currencysvc "github.com/tourbay/storefront/internal/currency"
	"github.com/tourbay/storefront/pkg/bookingapi"
	"github.com/tourbay/storefront/pkg/config"
	"github.com/tourbay/storefront/pkg/db"
	"github.com/tourbay/storefront/pkg/logger"
	"github.com/tourbay/storefront/pkg/metrics"
	"github.com/tourbay/storefront/pkg/migrate"
	"github.com/tourbay/storefront/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	defer func() {
		closeErr := multierr.Combine(dbClient.Close(), redisClient.Close())
		if closeErr != nil {
			logg.Error(context.Background(), "error closing dependencies", closeErr)
		}
	}()

	remoteMetrics := metrics.NewRemoteCallMetrics(prometheus.DefaultRegisterer)
	booking, err := bookingapi.NewClient(cfg.RemoteAPI, remoteMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build booking platform client", err)
		os.Exit(1)
	}

	snapshotRepo, err := cartsvc.NewGormSnapshotRepo(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to build cart snapshot repo", err)
		os.Exit(1)
	}
	cartManager := cartsvc.NewManager(booking, snapshotRepo, logg, cfg.Currency.DefaultCode)

	preferenceRepo, err := currencysvc.NewGormPreferenceRepo(dbClient.DB(), cfg.Currency.DefaultCode)
	if err != nil {
		logg.Error(context.Background(), "failed to build currency preference repo", err)
		os.Exit(1)
	}
	currencyService := currencysvc.NewService(booking, redisClient, cfg.Currency.RatesCacheTTL, logg)
	presenter := currencysvc.NewPresenter(currencyService)

	catalogService := catalogsvc.NewService(booking)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			booking,
			cartManager,
			catalogService,
			currencyService,
			presenter,
			preferenceRepo,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}
