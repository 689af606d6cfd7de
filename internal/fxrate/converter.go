package fxrate

// Two INR/USD rate sources coexist and are deliberately kept apart:
// FixedINRPerUSD prices deposits and withdrawals for aggregation, while the
// live frankfurter rate (with FallbackUSDPerINR when the fetch fails) only
// sizes the payout ceiling in INR. Do not unify them.
const (
	// FixedINRPerUSD is the conversion rate applied to deposit and
	// withdrawal amounts: 1 USD = 88.76 INR.
	FixedINRPerUSD = 88.76

	// FallbackUSDPerINR approximates 1 INR in USD when the live rate
	// endpoint is unreachable.
	FallbackUSDPerINR = 0.012
)

// Convert converts an amount in source currency units to the target
// currency, where rate is "source units per 1 target unit".
func Convert(amountInSourceUnits, rate float64) float64 {
	if rate == 0 {
		return 0
	}
	return amountInSourceUnits / rate
}

// INRToUSD converts an INR amount at the fixed aggregation rate.
func INRToUSD(amountINR float64) float64 {
	return Convert(amountINR, FixedINRPerUSD)
}
