package contracts

import "time"

// ScreeningResult is a put that passed the moneyness band and yield threshold.
// Build it with selection.NewScreeningResult so MonthlyYield always derives from
// OptionPrice, Strike and DaysToExpiration.
// ⭐ SSOT: 스크리너 → 리포트/알림 전달 형식
type ScreeningResult struct {
	Symbol           string  `json:"symbol" csv:"symbol"`
	Name             string  `json:"name" csv:"name"`
	Expiration       string  `json:"expiration" csv:"expiration"`
	Strike           float64 `json:"strike" csv:"strike"`
	OptionPrice      float64 `json:"option_price" csv:"option_price"`
	SpotPrice        float64 `json:"spot_price" csv:"spot_price"`
	DaysToExpiration int     `json:"days_to_expiration" csv:"days_to_expiration"`
	MonthlyYield     float64 `json:"monthly_yield" csv:"monthly_yield_pct"` // percent, 2 decimals
	ContractSymbol   string  `json:"contract_symbol" csv:"contract_symbol"`
}

// Moneyness returns strike as a fraction of spot (1.0 = at the money)
func (r ScreeningResult) Moneyness() float64 {
	if r.SpotPrice == 0 {
		return 0
	}
	return r.Strike / r.SpotPrice
}

// CapitalRequired is the cash needed to secure one contract (100 shares)
func (r ScreeningResult) CapitalRequired() float64 {
	return r.Strike * 100
}

// ReportMeta describes the run a report or summary belongs to
type ReportMeta struct {
	GeneratedAt     time.Time
	MinMonthlyYield float64 // percent
}
