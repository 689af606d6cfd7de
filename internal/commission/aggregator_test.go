package commission

import (
	"math"
	"testing"

	"ib-partner-service/internal/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateDealsEmpty(t *testing.T) {
	agg := AggregateDeals(nil, DefaultRateTable(), DefaultIBShare)

	if agg.TotalLots != 0 {
		t.Errorf("Expected zero total lots, got %f", agg.TotalLots)
	}
	if agg.TotalCommissionUSD != 0 {
		t.Errorf("Expected zero commission, got %f", agg.TotalCommissionUSD)
	}
	if agg.SymbolLots == nil {
		t.Fatal("Expected non-nil symbol map for empty input")
	}
	if len(agg.SymbolLots) != 0 {
		t.Errorf("Expected empty symbol map, got %d entries", len(agg.SymbolLots))
	}
}

func TestAggregateDealsMixedSymbols(t *testing.T) {
	deals := []types.Deal{
		{AccountNo: 1001, Symbol: "EURUSD", Quantity: 1.5},
		{AccountNo: 1001, Symbol: "EURUSD", Quantity: 0.5},
		{AccountNo: 1001, Symbol: "XAUUSD", Quantity: 1.0},
	}

	agg := AggregateDeals(deals, DefaultRateTable(), DefaultIBShare)

	if agg.TotalLots != 3.0 {
		t.Errorf("Expected 3.0 total lots, got %f", agg.TotalLots)
	}
	// 2.0 * 4.5 * 0.33 + 1.0 * 6.075 * 0.33
	if !almostEqual(agg.TotalCommissionUSD, 4.97475) {
		t.Errorf("Expected commission 4.97475, got %f", agg.TotalCommissionUSD)
	}
	if agg.SymbolLots["EURUSD"] != 2.0 {
		t.Errorf("Expected 2.0 EURUSD lots, got %f", agg.SymbolLots["EURUSD"])
	}
	if agg.SymbolLots["XAUUSD"] != 1.0 {
		t.Errorf("Expected 1.0 XAUUSD lots, got %f", agg.SymbolLots["XAUUSD"])
	}
}

func TestAggregateDealsOrderIndependent(t *testing.T) {
	deals := []types.Deal{
		{Symbol: "GBPUSD", Quantity: 0.7},
		{Symbol: "XAGUSD", Quantity: 2.0},
		{Symbol: "EURUSD", Quantity: 1.3},
	}
	reversed := []types.Deal{deals[2], deals[1], deals[0]}

	a := AggregateDeals(deals, DefaultRateTable(), DefaultIBShare)
	b := AggregateDeals(reversed, DefaultRateTable(), DefaultIBShare)

	if !almostEqual(a.TotalCommissionUSD, b.TotalCommissionUSD) {
		t.Errorf("Commission differs by ordering: %f vs %f", a.TotalCommissionUSD, b.TotalCommissionUSD)
	}
	if a.TotalLots != b.TotalLots {
		t.Errorf("Total lots differ by ordering: %f vs %f", a.TotalLots, b.TotalLots)
	}
}

func TestAggregateDealsUnlistedSymbol(t *testing.T) {
	deals := []types.Deal{
		{Symbol: "BTCUSD", Quantity: 5.0},
		{Symbol: "EURUSD", Quantity: 1.0},
	}

	agg := AggregateDeals(deals, DefaultRateTable(), DefaultIBShare)

	// Unlisted symbols count toward lots but earn nothing.
	if agg.TotalLots != 6.0 {
		t.Errorf("Expected 6.0 total lots, got %f", agg.TotalLots)
	}
	if !almostEqual(agg.TotalCommissionUSD, 1.0*4.5*0.33) {
		t.Errorf("Expected commission %f, got %f", 1.0*4.5*0.33, agg.TotalCommissionUSD)
	}
	if agg.SymbolLots["BTCUSD"] != 5.0 {
		t.Errorf("Expected unlisted symbol in lots map, got %f", agg.SymbolLots["BTCUSD"])
	}
}

func TestAggregateMerge(t *testing.T) {
	table := DefaultRateTable()
	a := AggregateDeals([]types.Deal{{Symbol: "EURUSD", Quantity: 1.0}}, table, DefaultIBShare)
	b := AggregateDeals([]types.Deal{
		{Symbol: "EURUSD", Quantity: 2.0},
		{Symbol: "XAUUSD", Quantity: 0.5},
	}, table, DefaultIBShare)

	a.Merge(b)

	if a.TotalLots != 3.5 {
		t.Errorf("Expected 3.5 total lots after merge, got %f", a.TotalLots)
	}
	if a.SymbolLots["EURUSD"] != 3.0 {
		t.Errorf("Expected 3.0 merged EURUSD lots, got %f", a.SymbolLots["EURUSD"])
	}

	whole := AggregateDeals([]types.Deal{
		{Symbol: "EURUSD", Quantity: 1.0},
		{Symbol: "EURUSD", Quantity: 2.0},
		{Symbol: "XAUUSD", Quantity: 0.5},
	}, table, DefaultIBShare)
	if !almostEqual(a.TotalCommissionUSD, whole.TotalCommissionUSD) {
		t.Errorf("Merged commission %f differs from single fold %f", a.TotalCommissionUSD, whole.TotalCommissionUSD)
	}
}

func TestMergeIntoZeroValue(t *testing.T) {
	var a Aggregate
	a.Merge(AggregateDeals([]types.Deal{{Symbol: "USDJPY", Quantity: 1.0}}, DefaultRateTable(), DefaultIBShare))

	if a.SymbolLots["USDJPY"] != 1.0 {
		t.Errorf("Expected merge into zero value to initialize the map, got %v", a.SymbolLots)
	}
}
