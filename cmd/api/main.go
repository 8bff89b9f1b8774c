package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/big-riz/HandcashIntegration/api/routes"
	"github.com/big-riz/HandcashIntegration/internal/collections"
	"github.com/big-riz/HandcashIntegration/internal/inventory"
	"github.com/big-riz/HandcashIntegration/internal/items"
	"github.com/big-riz/HandcashIntegration/internal/minting"
	"github.com/big-riz/HandcashIntegration/internal/payments"
	"github.com/big-riz/HandcashIntegration/internal/seeds"
	"github.com/big-riz/HandcashIntegration/internal/users"
	handcashwebhook "github.com/big-riz/HandcashIntegration/internal/webhooks/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/auth/session"
	"github.com/big-riz/HandcashIntegration/pkg/config"
	"github.com/big-riz/HandcashIntegration/pkg/db"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
	"github.com/big-riz/HandcashIntegration/pkg/metrics"
	"github.com/big-riz/HandcashIntegration/pkg/migrate"
	"github.com/big-riz/HandcashIntegration/pkg/redis"
)

const webhookDedupeTTL = 24 * time.Hour

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
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	client, err := handcash.NewClient(context.Background(), cfg.HandCash, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create handcash client", err)
		os.Exit(1)
	}

	minter, err := handcash.NewMinter(context.Background(), cfg.Minter, cfg.HandCash.BaseURL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create handcash minter", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mintMetrics := metrics.NewMintMetrics(registry)
	webhookMetrics := metrics.NewWebhookMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	collectionsRepo := collections.NewRepository(dbClient.DB())
	itemsRepo := items.NewRepository(dbClient.DB())
	seedsRepo := seeds.NewRepository(dbClient.DB())
	paymentsRepo := payments.NewRepository(dbClient.DB())

	paymentsService, err := payments.NewService(paymentsRepo, client, cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	mintService := minting.NewService(minter, collectionsRepo, itemsRepo, seedsRepo, cfg.Mint, mintMetrics, logg)
	inventoryFetcher := inventory.NewFetcher(client, logg)

	webhookGuard, err := handcashwebhook.NewIdempotencyGuard(redisClient, webhookDedupeTTL, "handcash_webhook")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook guard", err)
		os.Exit(1)
	}

	webhookService, err := handcashwebhook.NewService(handcashwebhook.ServiceParams{
		Payments:    paymentsRepo,
		Guard:       webhookGuard,
		Minter:      mintService,
		Metrics:     webhookMetrics,
		Logger:      logg,
		AppSecret:   client.AppSecret(),
		WebhookMint: cfg.FeatureFlags.WebhookMint,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			sessionManager,
			client,
			minter,
			usersRepo,
			collectionsRepo,
			itemsRepo,
			paymentsService,
			mintService,
			inventoryFetcher,
			webhookService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
