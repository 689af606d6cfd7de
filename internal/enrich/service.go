// Package enrich implements the IB connection aggregation pipeline: resolve
// a referral code to connected users, gather per-account deposits,
// withdrawals, and deals, and fold them into per-user ConnectionStats. The
// pipeline is a pure read-and-compute snapshot; re-invoking recomputes from
// scratch.
package enrich

import (
	"time"

	"ib-partner-service/internal/commission"
	"ib-partner-service/internal/interfaces"
)

// ZeroFillCounter counts zero-filled contributions by scope. Satisfied by
// *metrics.Collector; nil disables counting.
type ZeroFillCounter interface {
	RecordZeroFill(scope string)
}

// Service wires the backend client to the aggregation fold.
type Service struct {
	backend interfaces.Backend
	table   commission.RateTable
	ibShare float64
	workers int
	metrics ZeroFillCounter
	now     func() time.Time
}

// Params configures the enrichment service.
type Params struct {
	Backend interfaces.Backend
	Table   commission.RateTable
	IBShare float64
	Workers int
	Metrics ZeroFillCounter
	// Now overrides the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

// New creates an enrichment service.
func New(p Params) *Service {
	if p.Table == nil {
		p.Table = commission.DefaultRateTable()
	}
	if p.IBShare == 0 {
		p.IBShare = commission.DefaultIBShare
	}
	if p.Workers <= 0 {
		p.Workers = 8
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Service{
		backend: p.Backend,
		table:   p.Table,
		ibShare: p.IBShare,
		workers: p.Workers,
		metrics: p.Metrics,
		now:     p.Now,
	}
}

func (s *Service) countZeroFill(scope string) {
	if s.metrics != nil {
		s.metrics.RecordZeroFill(scope)
	}
}
