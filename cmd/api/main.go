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

	"github.com/angelmondragon/leadintake/api/routes"
	"github.com/angelmondragon/leadintake/api/views"
	"github.com/angelmondragon/leadintake/internal/adminauth"
	"github.com/angelmondragon/leadintake/internal/leads"
	"github.com/angelmondragon/leadintake/internal/payments"
	"github.com/angelmondragon/leadintake/pkg/config"
	"github.com/angelmondragon/leadintake/pkg/db"
	"github.com/angelmondragon/leadintake/pkg/instance"
	"github.com/angelmondragon/leadintake/pkg/logger"
	"github.com/angelmondragon/leadintake/pkg/metrics"
	"github.com/angelmondragon/leadintake/pkg/migrate"
	"github.com/angelmondragon/leadintake/pkg/redis"
	"github.com/angelmondragon/leadintake/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api exited with error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.EnsureSchema(ctx, logg, dbClient); err != nil {
		return err
	}

	stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	leadMetrics := metrics.NewLeadMetrics(registry)

	verifier := payments.NewVerifier(stripeClient, logg)
	leadService, err := leads.NewService(leads.ServiceParams{
		Store:    leads.NewRepository(dbClient.DB()),
		Verifier: verifier,
		Metrics:  leadMetrics,
		Logger:   logg,
	})
	if err != nil {
		return err
	}

	renderer, err := views.New()
	if err != nil {
		return err
	}

	deps := routes.Dependencies{
		Config:   cfg,
		Logger:   logg,
		Renderer: renderer,
		Leads:    leadService,
		Verifier: verifier,
		Checkout: payments.NewCheckoutCreator(stripeClient, cfg.Checkout, logg),
		Balance:  payments.NewBalanceChecker(stripeClient),
		Gate:     adminauth.NewGate(cfg.Admin.Key),
		Metrics:  leadMetrics,
		Gatherer: registry,
		DB:       dbClient,
	}

	if cfg.Redis.Enabled() {
		redisClient, redisErr := redis.New(ctx, cfg.Redis, logg)
		if redisErr != nil {
			return redisErr
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
		deps.RateLimitStore = redisClient
		deps.Redis = redisClient
	} else {
		logg.Warn(ctx, "redis not configured; submission rate limiting disabled")
	}

	if cfg.App.IsProd() && stripeClient.Configured() && stripeClient.Environment() != "live" {
		logg.Warn(ctx, "production app is using a stripe test key")
	}

	if !cfg.Admin.Enabled() {
		logg.Warn(ctx, "admin key not configured; admin routes deny every request")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"instance":  instance.GetID(),
		"addr":      addr,
		"paid_mode": cfg.Checkout.PaidMode,
		"stripe":    stripeClient.Configured(),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
