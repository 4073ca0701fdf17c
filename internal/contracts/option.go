package contracts

import "math"

// OptionCandidate is a single put quote for one strike/expiration of an underlying
// ⭐ SSOT: 시세 소스 → 스크리너 입력 형식
type OptionCandidate struct {
	ContractSymbol string  `json:"contract_symbol"`
	Strike         float64 `json:"strike"`
	LastPrice      float64 `json:"last_price"` // NaN when no trade
	Expiration     string  `json:"expiration"` // YYYY-MM-DD
}

// HasValidPrice reports whether LastPrice is a usable positive premium
func (c OptionCandidate) HasValidPrice() bool {
	if math.IsNaN(c.LastPrice) || math.IsInf(c.LastPrice, 0) {
		return false
	}
	return c.LastPrice > 0
}

// UnderlyingQuote is the spot price of the underlying at evaluation time
type UnderlyingQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// OptionChain holds the put side of one expiration for one underlying
type OptionChain struct {
	Quote      UnderlyingQuote   `json:"quote"`
	Expiration string            `json:"expiration"`
	Puts       []OptionCandidate `json:"puts"`
}
