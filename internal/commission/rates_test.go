package commission

import "testing"

func TestDefaultRateTable(t *testing.T) {
	table := DefaultRateTable()

	cases := map[string]float64{
		"EURUSD": 4.5,
		"GBPJPY": 4.5,
		"XAUUSD": 6.075,
		"XAGUSD": 5.4,
		"XPTUSD": 5.0,
	}
	for symbol, want := range cases {
		got, ok := table.RateFor(symbol)
		if !ok {
			t.Errorf("Expected %s to be listed", symbol)
			continue
		}
		if got != want {
			t.Errorf("Expected %s rate %f, got %f", symbol, want, got)
		}
	}

	if _, ok := table.RateFor("BTCUSD"); ok {
		t.Error("Expected BTCUSD to be unlisted")
	}
	if table.Symbols() != 28 {
		t.Errorf("Expected 28 listed symbols, got %d", table.Symbols())
	}
}

func TestStaticRateTableCopiesInput(t *testing.T) {
	src := map[string]float64{"EURUSD": 4.5}
	table := NewStaticRateTable(src)
	src["EURUSD"] = 99

	if rate, _ := table.RateFor("EURUSD"); rate != 4.5 {
		t.Errorf("Expected table to be isolated from caller's map, got %f", rate)
	}
}
