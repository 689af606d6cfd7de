// Package payout handles IB commission payouts. Estimation stays in
// internal/enrich; this package deals with the authoritative side: asking
// the backend to recompute payable commission, reading it back, and
// submitting withdrawal requests. Business rules (minimum amount, available
// balance) are the backend's to enforce; its rejection messages pass through
// verbatim.
package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ib-partner-service/internal/auditlog"
	"ib-partner-service/internal/fxrate"
	"ib-partner-service/internal/interfaces"
	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/types"
)

// Service submits and sizes commission payouts.
type Service struct {
	backend interfaces.Backend
	rates   fxrate.LiveRateFetcher
}

// New creates a payout service.
func New(backend interfaces.Backend, rates fxrate.LiveRateFetcher) *Service {
	return &Service{backend: backend, rates: rates}
}

// PayableCommission triggers the backend's commission recompute for the
// window and reads back the refreshed authoritative figure.
func (s *Service) PayableCommission(ctx context.Context, email string, start, end time.Time) (float64, error) {
	if err := s.backend.UpdateCommission(ctx, email, start, end); err != nil {
		// The stored figure is still readable, just possibly stale.
		logger.Warn(ctx, "Commission recompute trigger failed, reading stored value", "email", email, "error", err)
	}

	user, err := s.backend.User(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to read payable commission for %s: %w", email, err)
	}
	return user.Commission, nil
}

// Request submits a commission withdrawal. The returned result carries the
// backend's decision; on rejection, Result.Message is the backend's text
// untouched. Only a non-positive amount is rejected locally.
func (s *Service) Request(ctx context.Context, email string, accountNo int64, amountUSD float64) (*types.PayoutResult, error) {
	if amountUSD <= 0 {
		return &types.PayoutResult{
			Success: false,
			Message: "payout amount must be positive",
		}, nil
	}

	// Correlates the log line, the audit entry, and any support followup
	// for this attempt.
	reference := uuid.NewString()

	result, err := s.backend.WithdrawIBAmount(ctx, email, accountNo, amountUSD)
	if err != nil {
		return nil, fmt.Errorf("payout %s: %w", reference, err)
	}

	logger.Payout(ctx, email, accountNo, amountUSD, result.Success, result.Message,
		"order_id", result.OrderID, "reference", reference)
	if err := auditlog.AppendPayout(auditlog.PayoutEntry{
		Email:     email,
		AccountNo: accountNo,
		AmountUSD: amountUSD,
		Success:   result.Success,
		OrderID:   result.OrderID,
		Message:   result.Message,
		Extra:     map[string]any{"reference": reference},
	}); err != nil {
		logger.Warn(ctx, "Payout audit trail write failed", "email", email, "error", err)
	}
	return result, nil
}

// MaxWithdrawINR computes the INR withdrawal ceiling for an account from its
// USD balance at the live rate, falling back to the approximate constant
// when the quote endpoint is down.
func (s *Service) MaxWithdrawINR(ctx context.Context, accountNo int64) (float64, error) {
	snapshot, err := s.backend.CheckBalance(ctx, accountNo)
	if err != nil {
		return 0, err
	}
	return fxrate.MaxWithdrawINR(ctx, s.rates, snapshot.BalanceUSD), nil
}
