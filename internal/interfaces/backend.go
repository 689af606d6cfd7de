package interfaces

import (
	"context"
	"time"

	"ib-partner-service/internal/types"
)

// Backend is the brokerage's external REST API as this service consumes it.
// All state and authoritative computation live behind it; this service only
// reads and aggregates.
type Backend interface {
	ReferralCode(ctx context.Context, email string) (string, error)
	Users(ctx context.Context) ([]types.User, error)
	User(ctx context.Context, email string) (*types.User, error)
	UserByReferral(ctx context.Context, code string) ([]types.User, error)

	Deposits(ctx context.Context, accountNo int64) ([]types.Deposit, error)
	Withdrawals(ctx context.Context, accountNo int64) ([]types.Withdrawal, error)
	Deals(ctx context.Context, accountNo int64, start, end time.Time) ([]types.Deal, error)
	CheckBalance(ctx context.Context, accountNo int64) (*types.BalanceSnapshot, error)

	IBRequests(ctx context.Context) ([]types.IBRequest, error)
	ApproveIB(ctx context.Context, email string) (string, error)
	RejectIB(ctx context.Context, email string) (string, error)

	UpdateCommission(ctx context.Context, email string, start, end time.Time) error
	WithdrawIBAmount(ctx context.Context, email string, accountNo int64, amountUSD float64) (*types.PayoutResult, error)
}
