package fxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ib-partner-service/internal/logger"
)

// DefaultRateURL is the public endpoint quoting 1 INR in USD.
const DefaultRateURL = "https://api.frankfurter.app/latest?amount=1&from=INR&to=USD"

// LiveRateFetcher quotes how many USD one INR buys right now.
type LiveRateFetcher interface {
	USDPerINR(ctx context.Context) (float64, error)
}

// FrankfurterClient fetches the live INR->USD rate from frankfurter.app.
type FrankfurterClient struct {
	url        string
	httpClient *http.Client
}

// NewFrankfurterClient creates a client for the given quote URL; an empty
// url selects DefaultRateURL.
func NewFrankfurterClient(url string, timeout time.Duration) *FrankfurterClient {
	if url == "" {
		url = DefaultRateURL
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &FrankfurterClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// USDPerINR returns how many USD 1 INR buys.
func (c *FrankfurterClient) USDPerINR(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var quote struct {
		Rates struct {
			USD float64 `json:"USD"`
		} `json:"rates"`
	}
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, fmt.Errorf("failed to parse rate response: %w", err)
	}
	if quote.Rates.USD <= 0 {
		return 0, fmt.Errorf("rate endpoint returned non-positive USD rate")
	}

	return quote.Rates.USD, nil
}

// LiveUSDPerINR fetches the live rate and falls back to FallbackUSDPerINR on
// any failure. A stale-ish approximate rate is preferred over blocking the
// caller.
func LiveUSDPerINR(ctx context.Context, fetcher LiveRateFetcher) float64 {
	rate, err := fetcher.USDPerINR(ctx)
	if err != nil {
		logger.Warn(ctx, "Live INR->USD rate unavailable, using fallback", "fallback", FallbackUSDPerINR, "error", err)
		return FallbackUSDPerINR
	}
	return rate
}

// MaxWithdrawINR converts a USD balance into the withdrawal ceiling in INR
// using the live rate (inverted from USD-per-INR).
func MaxWithdrawINR(ctx context.Context, fetcher LiveRateFetcher, balanceUSD float64) float64 {
	usdPerINR := LiveUSDPerINR(ctx, fetcher)
	if usdPerINR <= 0 {
		return 0
	}
	return balanceUSD * (1 / usdPerINR)
}
