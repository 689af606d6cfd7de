package commission

// DefaultIBShare is the partner's cut of gross commission.
const DefaultIBShare = 0.33

// Per-lot commission rates. FX majors and crosses share one flat rate;
// metals carry their own higher rates. Symbols missing from the table are
// valid (new or unlisted instruments) and simply earn no commission.
const (
	fxPairRate  = 4.5
	goldRate    = 6.075
	silverRate  = 5.4
	metalsXRate = 5.0
)

var defaultRates = map[string]float64{
	"EURUSD": fxPairRate,
	"GBPUSD": fxPairRate,
	"USDJPY": fxPairRate,
	"USDCHF": fxPairRate,
	"AUDUSD": fxPairRate,
	"NZDUSD": fxPairRate,
	"USDCAD": fxPairRate,
	"EURGBP": fxPairRate,
	"EURJPY": fxPairRate,
	"EURCHF": fxPairRate,
	"EURAUD": fxPairRate,
	"EURNZD": fxPairRate,
	"EURCAD": fxPairRate,
	"GBPJPY": fxPairRate,
	"GBPCHF": fxPairRate,
	"GBPAUD": fxPairRate,
	"GBPNZD": fxPairRate,
	"GBPCAD": fxPairRate,
	"AUDJPY": fxPairRate,
	"AUDCHF": fxPairRate,
	"AUDNZD": fxPairRate,
	"AUDCAD": fxPairRate,
	"NZDJPY": fxPairRate,
	"CADJPY": fxPairRate,
	"CHFJPY": fxPairRate,
	"XAUUSD": goldRate,
	"XAGUSD": silverRate,
	"XPTUSD": metalsXRate,
}

// RateTable resolves a trading symbol to its per-lot commission rate.
type RateTable interface {
	RateFor(symbol string) (float64, bool)
}

// StaticRateTable is a fixed symbol -> rate-per-lot mapping.
type StaticRateTable struct {
	rates map[string]float64
}

// NewStaticRateTable copies the given mapping into a table.
func NewStaticRateTable(rates map[string]float64) *StaticRateTable {
	m := make(map[string]float64, len(rates))
	for sym, rate := range rates {
		m[sym] = rate
	}
	return &StaticRateTable{rates: m}
}

// DefaultRateTable returns the standing table of FX and metal pairs.
func DefaultRateTable() *StaticRateTable {
	return NewStaticRateTable(defaultRates)
}

// RateFor returns the per-lot rate for a symbol. The second return is false
// when the symbol is not listed; callers must treat that as a zero
// commission contribution, not an error.
func (t *StaticRateTable) RateFor(symbol string) (float64, bool) {
	rate, ok := t.rates[symbol]
	return rate, ok
}

// Symbols returns the number of listed symbols.
func (t *StaticRateTable) Symbols() int {
	return len(t.rates)
}
