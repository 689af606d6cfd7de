package commission

import "ib-partner-service/internal/types"

// Aggregate is the fold result over a deal list.
type Aggregate struct {
	TotalLots          float64            `json:"totalLots"`
	TotalCommissionUSD float64            `json:"totalCommissionUsd"`
	SymbolLots         map[string]float64 `json:"symbolLots"`
}

// NewAggregate returns an empty result with a non-nil symbol map.
func NewAggregate() Aggregate {
	return Aggregate{SymbolLots: map[string]float64{}}
}

// AggregateDeals folds deals into total lots, per-symbol lots, and the
// partner's commission at ibShare of the gross per-lot rate. The fold is
// pure and associative: output is identical for any ordering of the input,
// and an empty input yields all zeroes with an empty symbol map.
func AggregateDeals(deals []types.Deal, table RateTable, ibShare float64) Aggregate {
	agg := NewAggregate()
	for _, d := range deals {
		agg.TotalLots += d.Quantity
		agg.SymbolLots[d.Symbol] += d.Quantity
		if rate, ok := table.RateFor(d.Symbol); ok {
			agg.TotalCommissionUSD += d.Quantity * rate * ibShare
		}
	}
	return agg
}

// Merge adds other into the receiver. Used to combine per-account results
// into a per-user total; symbol lots merge by key.
func (a *Aggregate) Merge(other Aggregate) {
	a.TotalLots += other.TotalLots
	a.TotalCommissionUSD += other.TotalCommissionUSD
	if a.SymbolLots == nil {
		a.SymbolLots = map[string]float64{}
	}
	for sym, lots := range other.SymbolLots {
		a.SymbolLots[sym] += lots
	}
}
