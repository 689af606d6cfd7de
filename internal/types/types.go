package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Account is a trading account owned by exactly one user.
type Account struct {
	AccountNo int64  `json:"accountNo"`
	Currency  string `json:"currency"`
}

// User is a record from the backend user directory. Read-only here; only
// the backend mutates it.
type User struct {
	Email              string    `json:"email"`
	FullName           string    `json:"fullName"`
	ReferralCode       string    `json:"referralCode,omitempty"`
	IsApprovedIB       bool      `json:"isApprovedIB"`
	Commission         float64   `json:"commission"`
	CreatedAt          time.Time `json:"createdAt"`
	LastWithdrawalDate time.Time `json:"lastWithdrawalDate,omitempty"`
	Accounts           []Account `json:"accounts"`
}

// Deposit is a funding record fetched per account. Amount is in source
// currency units (INR).
type Deposit struct {
	AccountNo int64     `json:"accountNo"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Withdrawal mirrors Deposit. The status field is inconsistent upstream:
// some endpoints send a string, the payment history endpoint sends a bool.
// WithdrawalStatus absorbs both shapes at decode time.
type Withdrawal struct {
	AccountNo int64            `json:"accountNo"`
	Amount    float64          `json:"amount"`
	Status    WithdrawalStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Deal is an executed trade: symbol plus quantity in lots.
type Deal struct {
	AccountNo int64   `json:"accountno"`
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
}

// ConnectionStats is the derived per-user dataset behind the "My
// Connections" views. Built fresh on every request, never persisted.
// EstimatedCommissionUSD is the client-side estimate from the rate table;
// the authoritative payable figure lives on User.Commission and the two are
// never merged.
type ConnectionStats struct {
	Email                  string             `json:"email"`
	FullName               string             `json:"fullName"`
	RegisteredAt           time.Time          `json:"registeredAt"`
	Accounts               []int64            `json:"accounts"`
	TotalDepositUSD        float64            `json:"totalDepositUsd"`
	TotalWithdrawalUSD     float64            `json:"totalWithdrawalUsd"`
	TotalLots              float64            `json:"totalLots"`
	EstimatedCommissionUSD float64            `json:"estimatedCommissionUsd"`
	SymbolLots             map[string]float64 `json:"symbolLots"`
}

// PayStatus is the canonical tri-state every source-specific status shape is
// normalized into before aggregation sees it.
type PayStatus int

const (
	StatusPending PayStatus = iota
	StatusCompleted
	StatusFailed
)

func (s PayStatus) String() string {
	switch s {
	case StatusCompleted:
		return "COMPLETED"
	case StatusFailed:
		return "FAILED"
	default:
		return "PENDING"
	}
}

// NormalizeDepositStatus maps the deposit endpoint's string enum
// ("SUCCESS"/"FAILED"/"PENDING") to the canonical tri-state. Unknown values
// are treated as pending so they never count toward totals.
func NormalizeDepositStatus(raw string) PayStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUCCESS":
		return StatusCompleted
	case "FAILED", "REJECTED":
		return StatusFailed
	default:
		return StatusPending
	}
}

// NormalizeWithdrawalStatus maps the withdrawal endpoints' status spellings
// to the canonical tri-state. The backend has historically emitted both
// "Completed" and "completed" (and "SUCCESS" from the older payout path) for
// the same terminal state; all of them count as completion.
func NormalizeWithdrawalStatus(raw string) PayStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "COMPLETED", "SUCCESS":
		return StatusCompleted
	case "FAILED", "REJECTED":
		return StatusFailed
	default:
		return StatusPending
	}
}

// WithdrawalStatus decodes the two wire shapes the backend uses for a
// withdrawal's status: a JSON string, or a bool where true means completed
// and false means pending.
type WithdrawalStatus struct {
	Canonical PayStatus
}

func (w *WithdrawalStatus) UnmarshalJSON(b []byte) error {
	var asBool bool
	if err := json.Unmarshal(b, &asBool); err == nil {
		if asBool {
			w.Canonical = StatusCompleted
		} else {
			w.Canonical = StatusPending
		}
		return nil
	}

	var asString string
	if err := json.Unmarshal(b, &asString); err != nil {
		return err
	}
	w.Canonical = NormalizeWithdrawalStatus(asString)
	return nil
}

func (w WithdrawalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Canonical.String())
}

// ISODate formats a time as the calendar date the backend expects, no time
// component.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// TruncateToDate drops the time component, keeping the calendar date in the
// value's own location.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
