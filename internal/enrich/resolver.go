package enrich

import (
	"context"

	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/types"
)

// ResolveConnections returns the users whose referral code equals the given
// code, exact case-sensitive match. Users without a code never match. Zero
// matches is a valid empty result, not an error. The backend has no
// server-side filter, so the full directory is fetched and filtered here.
func (s *Service) ResolveConnections(ctx context.Context, referralCode string) ([]types.User, error) {
	if referralCode == "" {
		return []types.User{}, nil
	}

	users, err := s.backend.Users(ctx)
	if err != nil {
		return nil, err
	}

	matched := []types.User{}
	for _, u := range users {
		if u.ReferralCode != "" && u.ReferralCode == referralCode {
			matched = append(matched, u)
		}
	}

	logger.Debug(ctx, "Referral connections resolved",
		"referral_code", referralCode,
		"directory_size", len(users),
		"matched", len(matched),
	)
	return matched, nil
}
