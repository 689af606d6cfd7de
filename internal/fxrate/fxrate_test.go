package fxrate

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestConvert(t *testing.T) {
	if got := Convert(88.76, FixedINRPerUSD); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected 88.76 INR to be 1 USD, got %f", got)
	}
	if got := Convert(100, 0); got != 0 {
		t.Errorf("Expected zero for zero rate, got %f", got)
	}
}

func TestINRToUSD(t *testing.T) {
	got := INRToUSD(88760)
	if math.Abs(got-1000) > 1e-9 {
		t.Errorf("Expected 1000 USD, got %f", got)
	}
}

func TestFrankfurterClientParsesQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"amount":1.0,"base":"INR","rates":{"USD":0.0115}}`))
	}))
	defer srv.Close()

	client := NewFrankfurterClient(srv.URL, 2*time.Second)
	rate, err := client.USDPerINR(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rate != 0.0115 {
		t.Errorf("Expected rate 0.0115, got %f", rate)
	}
}

func TestFrankfurterClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewFrankfurterClient(srv.URL, 2*time.Second)
	if _, err := client.USDPerINR(context.Background()); err == nil {
		t.Error("Expected an error on non-200 status")
	}
}

func TestFrankfurterClientRejectsZeroRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{"USD":0}}`))
	}))
	defer srv.Close()

	client := NewFrankfurterClient(srv.URL, 2*time.Second)
	if _, err := client.USDPerINR(context.Background()); err == nil {
		t.Error("Expected an error on a zero rate")
	}
}

type fixedFetcher struct {
	rate float64
	err  error
}

func (f fixedFetcher) USDPerINR(ctx context.Context) (float64, error) {
	return f.rate, f.err
}

func TestLiveUSDPerINRFallsBack(t *testing.T) {
	rate := LiveUSDPerINR(context.Background(), fixedFetcher{err: errors.New("down")})
	if rate != FallbackUSDPerINR {
		t.Errorf("Expected fallback rate %f, got %f", FallbackUSDPerINR, rate)
	}
}

func TestMaxWithdrawINR(t *testing.T) {
	got := MaxWithdrawINR(context.Background(), fixedFetcher{rate: 0.0125}, 100)
	if math.Abs(got-8000) > 1e-6 {
		t.Errorf("Expected 8000 INR ceiling, got %f", got)
	}

	// With the fetcher down, the fallback rate sizes the ceiling.
	got = MaxWithdrawINR(context.Background(), fixedFetcher{err: errors.New("down")}, 120)
	if math.Abs(got-10000) > 1e-6 {
		t.Errorf("Expected 10000 INR ceiling at fallback rate, got %f", got)
	}
}
