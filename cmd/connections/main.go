package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"ib-partner-service/internal/backend"
	"ib-partner-service/internal/enrich"
	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/store"
)

// One-shot enrichment run: resolve a referral code (or a partner email) and
// print the connections dataset as JSON.
func main() {
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "config.yaml", "path to config file")
		email      = flag.String("email", "", "partner email to resolve the referral code for")
		code       = flag.String("code", "", "referral code (skips the email lookup)")
		summary    = flag.Bool("summary", false, "print the rolled-up partner summary instead of the raw list")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if *email == "" && *code == "" {
		fmt.Fprintln(os.Stderr, "either -email or -code is required")
		os.Exit(2)
	}

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	backendClient := backend.NewClient(backend.Params{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       cfg.BackendTimeout(),
		RetryAttempts: cfg.Backend.RetryAttempts,
		RateMaxTokens: cfg.Backend.RateLimit.MaxTokens,
		RateRefill:    time.Duration(cfg.Backend.RateLimit.RefillMillis) * time.Millisecond,
	})
	svc := enrich.New(enrich.Params{
		Backend: backendClient,
		IBShare: cfg.Enrich.IBShare,
		Workers: cfg.Enrich.Workers,
	})

	var out interface{}
	switch {
	case *summary:
		if *email == "" {
			fmt.Fprintln(os.Stderr, "-summary requires -email")
			os.Exit(2)
		}
		s, err := svc.Summary(ctx, *email)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Summary failed: %v\n", err)
			os.Exit(1)
		}
		out = s
	default:
		referral := *code
		if referral == "" {
			referral, err = backendClient.ReferralCode(ctx, *email)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Referral code lookup failed: %v\n", err)
				os.Exit(1)
			}
		}
		out = svc.Enrich(ctx, referral)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(1)
	}
}
