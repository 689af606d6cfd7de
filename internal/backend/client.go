package backend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ib-partner-service/internal/api"
	"ib-partner-service/internal/types"
)

// Client talks to the brokerage backend REST API. It implements
// interfaces.Backend.
type Client struct {
	api     *api.Client
	limiter *RateLimiter
	retry   *api.RetryConfig
}

// Params configures the backend client.
type Params struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	// Token bucket sizing; zero values accept the defaults.
	RateMaxTokens int
	RateRefill    time.Duration
}

// NewClient creates a backend client.
func NewClient(p Params) *Client {
	if p.Timeout == 0 {
		p.Timeout = 15 * time.Second
	}
	if p.RetryAttempts == 0 {
		p.RetryAttempts = 2
	}
	if p.RateMaxTokens == 0 {
		p.RateMaxTokens = 20
	}
	if p.RateRefill == 0 {
		p.RateRefill = 100 * time.Millisecond
	}

	return &Client{
		api: api.NewClient(
			api.WithBaseURL(p.BaseURL),
			api.WithTimeout(p.Timeout),
			api.WithHeader("Accept", "application/json"),
			api.WithLogging(true),
		),
		limiter: NewRateLimiter(p.RateMaxTokens, p.RateRefill),
		retry: &api.RetryConfig{
			MaxAttempts: p.RetryAttempts,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     3 * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := c.api.GETWithRetry(ctx, url, c.retry)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.ParseJSON(out)
}

func (c *Client) post(ctx context.Context, url string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	// POSTs are not retried: getDeals is safe but the payout and
	// commission endpoints are not idempotent.
	resp, err := c.api.POST(ctx, url, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.ParseJSON(out)
}

func (c *Client) put(ctx context.Context, url string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := c.api.PUT(ctx, url, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.ParseJSON(out)
}

// ReferralCode fetches the referral code assigned to an approved IB.
func (c *Client) ReferralCode(ctx context.Context, email string) (string, error) {
	var out struct {
		ReferralCode string `json:"referralCode"`
	}
	if err := c.get(ctx, "/api/ib/"+email, &out); err != nil {
		return "", fmt.Errorf("failed to fetch referral code for %s: %w", email, err)
	}
	return out.ReferralCode, nil
}

// Users fetches the full user directory. The backend has no server-side
// referral filter; connection matching happens on our side.
func (c *Client) Users(ctx context.Context) ([]types.User, error) {
	var out []types.User
	if err := c.get(ctx, "/api/auth/users", &out); err != nil {
		return nil, fmt.Errorf("failed to fetch user directory: %w", err)
	}
	return out, nil
}

// User fetches a single user with nested accounts and lifecycle dates.
func (c *Client) User(ctx context.Context, email string) (*types.User, error) {
	var out types.User
	if err := c.get(ctx, "/api/auth/user/"+email, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", email, err)
	}
	return &out, nil
}

// UserByReferral queries the backend's referral lookup endpoint.
func (c *Client) UserByReferral(ctx context.Context, code string) ([]types.User, error) {
	var out []types.User
	if err := c.get(ctx, "/api/auth/userByRef/"+code, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch users by referral %s: %w", code, err)
	}
	return out, nil
}

// Deposits fetches the deposit history for one account.
func (c *Client) Deposits(ctx context.Context, accountNo int64) ([]types.Deposit, error) {
	var out struct {
		Deposits []types.Deposit `json:"deposits"`
	}
	if err := c.get(ctx, "/api/payment/deposit/"+strconv.FormatInt(accountNo, 10), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch deposits for account %d: %w", accountNo, err)
	}
	return out.Deposits, nil
}

// Withdrawals fetches the withdrawal history for one account.
func (c *Client) Withdrawals(ctx context.Context, accountNo int64) ([]types.Withdrawal, error) {
	var out struct {
		Withdrawals []types.Withdrawal `json:"withdrawals"`
	}
	if err := c.get(ctx, "/api/payment/withdrawal/"+strconv.FormatInt(accountNo, 10), &out); err != nil {
		return nil, fmt.Errorf("failed to fetch withdrawals for account %d: %w", accountNo, err)
	}
	return out.Withdrawals, nil
}

// Deals fetches the trade deals for an account within [start, end]. Dates go
// on the wire as calendar dates, no time component.
func (c *Client) Deals(ctx context.Context, accountNo int64, start, end time.Time) ([]types.Deal, error) {
	body := map[string]string{
		"accountno": strconv.FormatInt(accountNo, 10),
		"sdate":     types.ISODate(start),
		"edate":     types.ISODate(end),
	}
	var out struct {
		Data []types.Deal `json:"data"`
	}
	if err := c.post(ctx, "/api/moneyplant/getDeals", body, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch deals for account %d: %w", accountNo, err)
	}
	return out.Data, nil
}

// CheckBalance fetches the platform balance snapshot for one account.
func (c *Client) CheckBalance(ctx context.Context, accountNo int64) (*types.BalanceSnapshot, error) {
	body := map[string]string{"accountno": strconv.FormatInt(accountNo, 10)}
	var out struct {
		Data struct {
			Response  string `json:"response"`
			Message   string `json:"message"`
			Balance   string `json:"balance"`
			DWBalance string `json:"DWBalance"`
		} `json:"data"`
	}
	if err := c.post(ctx, "/api/moneyplant/checkBalance", body, &out); err != nil {
		return nil, fmt.Errorf("failed to check balance for account %d: %w", accountNo, err)
	}
	if out.Data.Response != "success" {
		return nil, fmt.Errorf("balance check rejected for account %d: %s", accountNo, out.Data.Message)
	}

	balance, err := strconv.ParseFloat(out.Data.Balance, 64)
	if err != nil {
		return nil, fmt.Errorf("unparseable balance %q for account %d: %w", out.Data.Balance, accountNo, err)
	}

	return &types.BalanceSnapshot{
		AccountNo:  accountNo,
		BalanceUSD: balance,
		DWBalance:  out.Data.DWBalance,
	}, nil
}

// IBRequests fetches the IB application list for the admin back-office.
func (c *Client) IBRequests(ctx context.Context) ([]types.IBRequest, error) {
	var out []types.IBRequest
	if err := c.get(ctx, "/api/ib", &out); err != nil {
		return nil, fmt.Errorf("failed to fetch IB requests: %w", err)
	}
	return out, nil
}

// ApproveIB approves an IB application and returns the backend's message.
func (c *Client) ApproveIB(ctx context.Context, email string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.put(ctx, "/api/ib/"+email+"/approve", &out); err != nil {
		return "", fmt.Errorf("failed to approve IB %s: %w", email, err)
	}
	return out.Message, nil
}

// RejectIB rejects an IB application and returns the backend's message.
func (c *Client) RejectIB(ctx context.Context, email string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.put(ctx, "/api/ib/"+email+"/reject", &out); err != nil {
		return "", fmt.Errorf("failed to reject IB %s: %w", email, err)
	}
	return out.Message, nil
}

// UpdateCommission asks the backend to recompute the authoritative payable
// commission for the window. Fire-and-forget from the caller's perspective;
// the refreshed figure is read back via User.
func (c *Client) UpdateCommission(ctx context.Context, email string, start, end time.Time) error {
	body := map[string]string{
		"email": email,
		"sdate": types.ISODate(start),
		"edate": types.ISODate(end),
	}
	if err := c.post(ctx, "/api/ib/update-commission", body, nil); err != nil {
		return fmt.Errorf("failed to trigger commission update for %s: %w", email, err)
	}
	return nil
}

// WithdrawIBAmount submits a commission payout. Business-rule rejections
// come back as {success:false, message} with HTTP 200 and are returned as a
// result, not an error.
func (c *Client) WithdrawIBAmount(ctx context.Context, email string, accountNo int64, amountUSD float64) (*types.PayoutResult, error) {
	body := map[string]interface{}{
		"email":     email,
		"accountno": strconv.FormatInt(accountNo, 10),
		"amount":    amountUSD,
	}
	var out types.PayoutResult
	if err := c.post(ctx, "/api/ib/withdrawalIBamount", body, &out); err != nil {
		return nil, fmt.Errorf("failed to submit IB payout for %s: %w", email, err)
	}
	return &out, nil
}
