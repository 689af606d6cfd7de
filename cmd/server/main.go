package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ib-partner-service/internal/auditlog"
	"ib-partner-service/internal/backend"
	"ib-partner-service/internal/enrich"
	"ib-partner-service/internal/fxrate"
	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/payout"
	"ib-partner-service/internal/server"
	"ib-partner-service/internal/store"
	"ib-partner-service/internal/trace"
	"ib-partner-service/pkg/metrics"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if v := os.Getenv("PAYOUT_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		_ = auditlog.CompressOlder(n)
	}

	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", configPath)
		os.Exit(1)
	}

	backendClient := backend.NewClient(backend.Params{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       cfg.BackendTimeout(),
		RetryAttempts: cfg.Backend.RetryAttempts,
		RateMaxTokens: cfg.Backend.RateLimit.MaxTokens,
		RateRefill:    time.Duration(cfg.Backend.RateLimit.RefillMillis) * time.Millisecond,
	})
	rateClient := fxrate.NewFrankfurterClient(cfg.Rates.LiveURL, cfg.RateTimeout())

	collector := metrics.NewCollector()
	enrichSvc := enrich.New(enrich.Params{
		Backend: backendClient,
		IBShare: cfg.Enrich.IBShare,
		Workers: cfg.Enrich.Workers,
		Metrics: collector,
	})
	payoutSvc := payout.New(backendClient, rateClient)
	authSvc := server.NewAuthService(cfg.JWTSecret(), 24*time.Hour)

	handler := server.NewHandler(enrichSvc, payoutSvc, backendClient, authSvc, collector)
	router := server.NewRouter(handler, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, "Server started", "address", cfg.Server.Address, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorWithErr(ctx, "Server failed", err)
			cancel()
		}
	}()

	select {
	case <-sigc:
		logger.Info(ctx, "Shutting down...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Graceful shutdown failed", err)
	}
	_ = trace.Shutdown(shutdownCtx)
}
