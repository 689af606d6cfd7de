package enrich

import (
	"context"
	"sync"

	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/trace"
	"ib-partner-service/internal/types"
)

// Enrich resolves a referral code and computes ConnectionStats for every
// connected user. Per-user enrichment fans out across a bounded worker pool;
// each worker returns a value-or-zero result so the reduce stays a plain
// associative fold with no shared accumulator. Cancelling ctx stops
// in-flight fan-out work.
//
// A directory lookup failure yields an empty list with the error logged, so
// callers render "no connections" instead of failing the whole view. A
// single user's fetch failures zero-fill that user only.
func (s *Service) Enrich(ctx context.Context, referralCode string) []types.ConnectionStats {
	ctx, span := trace.StartSpan(ctx, "enrich.batch")
	defer span.End()

	users, err := s.ResolveConnections(ctx, referralCode)
	if err != nil {
		logger.ErrorWithErr(ctx, "Referral lookup failed, returning empty connections", err, "referral_code", referralCode)
		return []types.ConnectionStats{}
	}
	if len(users) == 0 {
		return []types.ConnectionStats{}
	}

	results := make([]types.ConnectionStats, len(users))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := s.workers
	if workers > len(users) {
		workers = len(users)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.enrichUser(ctx, users[i])
			}
		}()
	}

	for i := range users {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Remaining users keep their zero-valued slots.
			close(jobs)
			wg.Wait()
			return finalize(users, results)
		}
	}
	close(jobs)
	wg.Wait()

	return finalize(users, results)
}

// enrichUser computes one user's ConnectionStats by summing per-account
// collections. Within a user the fetches run sequentially; a failed account
// is zero-filled and logged, and its siblings still count.
func (s *Service) enrichUser(ctx context.Context, u types.User) types.ConnectionStats {
	stats := newConnectionStats(u)
	start, end := s.Window(&u)

	for _, acc := range u.Accounts {
		accStats, err := s.CollectStats(ctx, acc.AccountNo, start, end)
		if err != nil {
			logger.ZeroFill(ctx, "account", u.Email, err, "account", acc.AccountNo)
			s.countZeroFill("account")
			continue
		}
		stats.TotalDepositUSD += accStats.TotalDepositUSD
		stats.TotalWithdrawalUSD += accStats.TotalWithdrawalUSD
		stats.TotalLots += accStats.Deals.TotalLots
		stats.EstimatedCommissionUSD += accStats.Deals.TotalCommissionUSD
		for sym, lots := range accStats.Deals.SymbolLots {
			stats.SymbolLots[sym] += lots
		}
	}

	return stats
}

func newConnectionStats(u types.User) types.ConnectionStats {
	accounts := make([]int64, 0, len(u.Accounts))
	for _, acc := range u.Accounts {
		accounts = append(accounts, acc.AccountNo)
	}
	return types.ConnectionStats{
		Email:        u.Email,
		FullName:     u.FullName,
		RegisteredAt: u.CreatedAt,
		Accounts:     accounts,
		SymbolLots:   map[string]float64{},
	}
}

// finalize replaces any zero-valued slots left by cancellation with proper
// identity-carrying records so callers always see one entry per connection.
func finalize(users []types.User, results []types.ConnectionStats) []types.ConnectionStats {
	for i := range results {
		if results[i].SymbolLots == nil {
			results[i] = newConnectionStats(users[i])
		}
	}
	return results
}
