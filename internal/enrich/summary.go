package enrich

import (
	"context"

	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/types"
)

// PartnerSummary is the rolled-up view for one IB partner. Estimated
// commission is the rate-table figure computed here; payable commission is
// the backend's authoritative number. They answer different questions and
// are reported side by side, never merged.
type PartnerSummary struct {
	Email                  string                  `json:"email"`
	ReferralCode           string                  `json:"referralCode"`
	Connections            []types.ConnectionStats `json:"connections"`
	TotalDepositUSD        float64                 `json:"totalDepositUsd"`
	TotalWithdrawalUSD     float64                 `json:"totalWithdrawalUsd"`
	TotalLots              float64                 `json:"totalLots"`
	EstimatedCommissionUSD float64                 `json:"estimatedCommissionUsd"`
	PayableCommissionUSD   float64                 `json:"payableCommissionUsd"`
}

// Summary enriches all of a partner's connections and folds them into one
// summary record.
func (s *Service) Summary(ctx context.Context, email string) (*PartnerSummary, error) {
	code, err := s.backend.ReferralCode(ctx, email)
	if err != nil {
		return nil, err
	}

	summary := &PartnerSummary{
		Email:        email,
		ReferralCode: code,
		Connections:  s.Enrich(ctx, code),
	}
	for _, c := range summary.Connections {
		summary.TotalDepositUSD += c.TotalDepositUSD
		summary.TotalWithdrawalUSD += c.TotalWithdrawalUSD
		summary.TotalLots += c.TotalLots
		summary.EstimatedCommissionUSD += c.EstimatedCommissionUSD
	}

	// The payable figure is whatever the backend last computed; a failed
	// read leaves it at zero rather than failing the summary.
	if user, err := s.backend.User(ctx, email); err != nil {
		logger.ZeroFill(ctx, "payable_commission", email, err)
		s.countZeroFill("payable_commission")
	} else {
		summary.PayableCommissionUSD = user.Commission
	}

	return summary, nil
}
