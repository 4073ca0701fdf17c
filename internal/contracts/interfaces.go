package contracts

import "context"

// MarketDataSource supplies option chains for the screener.
// The shipped implementation serves sample data; a live feed plugs in here.
// ⭐ SSOT: 시세 소스 인터페이스
type MarketDataSource interface {
	// OptionChain returns the spot quote and put candidates of symbol for the
	// given expiration (YYYY-MM-DD).
	OptionChain(ctx context.Context, symbol, expiration string) (*OptionChain, error)
}
