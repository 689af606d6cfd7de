package payout

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"ib-partner-service/internal/types"
)

type fakeBackend struct {
	user          *types.User
	userErr       error
	updateErr     error
	updateCalled  bool
	balance       *types.BalanceSnapshot
	balanceErr    error
	payoutResult  *types.PayoutResult
	payoutErr     error
	payoutEmail   string
	payoutAccount int64
	payoutAmount  float64
}

func (f *fakeBackend) ReferralCode(ctx context.Context, email string) (string, error) {
	return "", nil
}

func (f *fakeBackend) Users(ctx context.Context) ([]types.User, error) { return nil, nil }

func (f *fakeBackend) User(ctx context.Context, email string) (*types.User, error) {
	return f.user, f.userErr
}

func (f *fakeBackend) UserByReferral(ctx context.Context, code string) ([]types.User, error) {
	return nil, nil
}

func (f *fakeBackend) Deposits(ctx context.Context, accountNo int64) ([]types.Deposit, error) {
	return nil, nil
}

func (f *fakeBackend) Withdrawals(ctx context.Context, accountNo int64) ([]types.Withdrawal, error) {
	return nil, nil
}

func (f *fakeBackend) Deals(ctx context.Context, accountNo int64, start, end time.Time) ([]types.Deal, error) {
	return nil, nil
}

func (f *fakeBackend) CheckBalance(ctx context.Context, accountNo int64) (*types.BalanceSnapshot, error) {
	return f.balance, f.balanceErr
}

func (f *fakeBackend) IBRequests(ctx context.Context) ([]types.IBRequest, error) { return nil, nil }

func (f *fakeBackend) ApproveIB(ctx context.Context, email string) (string, error) { return "", nil }

func (f *fakeBackend) RejectIB(ctx context.Context, email string) (string, error) { return "", nil }

func (f *fakeBackend) UpdateCommission(ctx context.Context, email string, start, end time.Time) error {
	f.updateCalled = true
	return f.updateErr
}

func (f *fakeBackend) WithdrawIBAmount(ctx context.Context, email string, accountNo int64, amountUSD float64) (*types.PayoutResult, error) {
	f.payoutEmail = email
	f.payoutAccount = accountNo
	f.payoutAmount = amountUSD
	return f.payoutResult, f.payoutErr
}

type fixedFetcher struct {
	rate float64
	err  error
}

func (f fixedFetcher) USDPerINR(ctx context.Context) (float64, error) {
	return f.rate, f.err
}

func TestRequestRejectsNonPositiveAmount(t *testing.T) {
	t.Setenv("PAYOUT_LOG_DIR", t.TempDir())
	svc := New(&fakeBackend{}, fixedFetcher{rate: 0.012})

	result, err := svc.Request(context.Background(), "partner@x.com", 1001, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Success {
		t.Error("Expected a zero amount to be rejected")
	}
}

func TestRequestPassesBackendRejectionThrough(t *testing.T) {
	t.Setenv("PAYOUT_LOG_DIR", t.TempDir())
	backend := &fakeBackend{
		payoutResult: &types.PayoutResult{
			Success: false,
			Message: "Commission balance below minimum withdrawal of $75",
		},
	}
	svc := New(backend, fixedFetcher{rate: 0.012})

	result, err := svc.Request(context.Background(), "partner@x.com", 1001, 50)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Success {
		t.Error("Expected the rejection to pass through")
	}
	if result.Message != "Commission balance below minimum withdrawal of $75" {
		t.Errorf("Expected the backend message untouched, got %q", result.Message)
	}
	if backend.payoutAmount != 50 {
		t.Errorf("Expected the requested amount forwarded, got %f", backend.payoutAmount)
	}
}

func TestRequestAccepted(t *testing.T) {
	t.Setenv("PAYOUT_LOG_DIR", t.TempDir())
	backend := &fakeBackend{
		payoutResult: &types.PayoutResult{Success: true, OrderID: "ORD-991", NewCommission: 12.5},
	}
	svc := New(backend, fixedFetcher{rate: 0.012})

	result, err := svc.Request(context.Background(), "partner@x.com", 1001, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success || result.OrderID != "ORD-991" {
		t.Errorf("Unexpected result: %+v", result)
	}
	if backend.payoutEmail != "partner@x.com" || backend.payoutAccount != 1001 {
		t.Errorf("Unexpected forwarded identity: %s / %d", backend.payoutEmail, backend.payoutAccount)
	}
}

func TestRequestTransportError(t *testing.T) {
	t.Setenv("PAYOUT_LOG_DIR", t.TempDir())
	backend := &fakeBackend{payoutErr: errors.New("connection refused")}
	svc := New(backend, fixedFetcher{rate: 0.012})

	if _, err := svc.Request(context.Background(), "partner@x.com", 1001, 100); err == nil {
		t.Error("Expected a transport error to surface")
	}
}

func TestPayableCommission(t *testing.T) {
	backend := &fakeBackend{user: &types.User{Email: "partner@x.com", Commission: 81.25}}
	svc := New(backend, fixedFetcher{rate: 0.012})

	got, err := svc.PayableCommission(context.Background(), "partner@x.com", time.Now().AddDate(0, -1, 0), time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != 81.25 {
		t.Errorf("Expected 81.25, got %f", got)
	}
	if !backend.updateCalled {
		t.Error("Expected the recompute trigger to be called")
	}
}

func TestPayableCommissionStaleOnRecomputeFailure(t *testing.T) {
	backend := &fakeBackend{
		user:      &types.User{Email: "partner@x.com", Commission: 81.25},
		updateErr: errors.New("recompute unavailable"),
	}
	svc := New(backend, fixedFetcher{rate: 0.012})

	// A failed recompute still yields the stored figure.
	got, err := svc.PayableCommission(context.Background(), "partner@x.com", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != 81.25 {
		t.Errorf("Expected the stored figure, got %f", got)
	}
}

func TestMaxWithdrawINR(t *testing.T) {
	backend := &fakeBackend{balance: &types.BalanceSnapshot{AccountNo: 1001, BalanceUSD: 100}}
	svc := New(backend, fixedFetcher{rate: 0.0125})

	got, err := svc.MaxWithdrawINR(context.Background(), 1001)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(got-8000) > 1e-6 {
		t.Errorf("Expected 8000 INR, got %f", got)
	}
}

func TestMaxWithdrawINRBalanceFailure(t *testing.T) {
	backend := &fakeBackend{balanceErr: errors.New("platform down")}
	svc := New(backend, fixedFetcher{rate: 0.012})

	if _, err := svc.MaxWithdrawINR(context.Background(), 1001); err == nil {
		t.Error("Expected a balance lookup failure to surface")
	}
}
