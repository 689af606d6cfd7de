package enrich

import (
	"context"
	"time"

	"ib-partner-service/internal/commission"
	"ib-partner-service/internal/fxrate"
	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/types"
)

// AccountStats is one trading account's contribution within a date window.
type AccountStats struct {
	AccountNo          int64
	TotalDepositUSD    float64
	TotalWithdrawalUSD float64
	Deals              commission.Aggregate
}

// CollectStats gathers deposits, withdrawals, and deals for one account
// within [start, end] and folds them into aggregate stats. Any fetch
// failure surfaces as an error; the caller zero-fills the account and keeps
// going, so one bad account never aborts a collection run.
func (s *Service) CollectStats(ctx context.Context, accountNo int64, start, end time.Time) (AccountStats, error) {
	stats := AccountStats{AccountNo: accountNo, Deals: commission.NewAggregate()}

	deposits, err := s.backend.Deposits(ctx, accountNo)
	if err != nil {
		return AccountStats{AccountNo: accountNo, Deals: commission.NewAggregate()}, err
	}
	for _, d := range deposits {
		if types.NormalizeDepositStatus(d.Status) == types.StatusCompleted {
			stats.TotalDepositUSD += fxrate.INRToUSD(d.Amount)
		}
	}

	withdrawals, err := s.backend.Withdrawals(ctx, accountNo)
	if err != nil {
		return AccountStats{AccountNo: accountNo, Deals: commission.NewAggregate()}, err
	}
	for _, w := range withdrawals {
		if w.Status.Canonical == types.StatusCompleted {
			stats.TotalWithdrawalUSD += fxrate.INRToUSD(w.Amount)
		}
	}

	deals, err := s.backend.Deals(ctx, accountNo, start, end)
	if err != nil {
		return AccountStats{AccountNo: accountNo, Deals: commission.NewAggregate()}, err
	}
	stats.Deals = commission.AggregateDeals(deals, s.table, s.ibShare)

	logger.Debug(ctx, "Account stats collected",
		"account", accountNo,
		"deposits", len(deposits),
		"withdrawals", len(withdrawals),
		"deals", len(deals),
		"total_lots", stats.Deals.TotalLots,
	)
	return stats, nil
}

// Window returns the default collection window for a user: from the last
// withdrawal date if present, else the account-creation date, both truncated
// to the calendar date; up to today.
func (s *Service) Window(u *types.User) (start, end time.Time) {
	start = u.CreatedAt
	if !u.LastWithdrawalDate.IsZero() {
		start = u.LastWithdrawalDate
	}
	return types.TruncateToDate(start), types.TruncateToDate(s.now())
}
