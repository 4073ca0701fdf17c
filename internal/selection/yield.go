package selection

import (
	"github.com/shopspring/decimal"

	"github.com/wonny/putscreener/internal/contracts"
)

// daysPerMonth is the nominal holding period yields are scaled to
const daysPerMonth = 30

// MonthlyYield returns the premium-to-strike return in percent, scaled
// linearly from the actual holding period to a 30-day month.
// No compounding and no capping: very short-dated contracts can report large values.
func MonthlyYield(optionPrice, strike float64, daysToExpiration int) float64 {
	if strike == 0 || daysToExpiration <= 0 {
		return 0
	}

	base := (optionPrice / strike) * 100
	return base * (daysPerMonth / float64(daysToExpiration))
}

// exactFloatExponent is small enough for any float64 to convert to a decimal exactly
const exactFloatExponent = -1074

// RoundYield rounds a yield to two decimal places for display and ranking.
// Rounding works on the exact binary value with ties to even, so 2.675
// (stored as 2.67499...) becomes 2.67.
func RoundYield(yield float64) float64 {
	rounded, _ := decimal.NewFromFloatWithExponent(yield, exactFloatExponent).RoundBank(2).Float64()
	return rounded
}

// NewScreeningResult materializes a qualifying candidate.
// MonthlyYield is always derived here, never set by callers.
func NewScreeningResult(
	quote contracts.UnderlyingQuote,
	name string,
	expiration string,
	candidate contracts.OptionCandidate,
	daysToExpiration int,
) contracts.ScreeningResult {
	return contracts.ScreeningResult{
		Symbol:           quote.Symbol,
		Name:             name,
		Expiration:       expiration,
		Strike:           candidate.Strike,
		OptionPrice:      candidate.LastPrice,
		SpotPrice:        quote.Price,
		DaysToExpiration: daysToExpiration,
		MonthlyYield:     RoundYield(MonthlyYield(candidate.LastPrice, candidate.Strike, daysToExpiration)),
		ContractSymbol:   candidate.ContractSymbol,
	}
}
