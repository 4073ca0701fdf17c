package selection

import (
	"errors"
	"fmt"
	"time"

	"github.com/wonny/putscreener/internal/contracts"
	"github.com/wonny/putscreener/pkg/logger"
)

// ExpirationLayout is the calendar date format of option expirations
const ExpirationLayout = "2006-01-02"

// ErrInvalidExpiration is returned when an expiration date cannot be parsed
var ErrInvalidExpiration = errors.New("invalid expiration date")

// NameResolver maps a ticker symbol to its display name
type NameResolver interface {
	DisplayName(symbol string) string
}

// Screener filters one underlying's puts by moneyness and monthly yield
// ⭐ SSOT: 숏풋 스크리닝 로직은 여기서만
type Screener struct {
	config ScreenerConfig
	names  NameResolver
	logger *logger.Logger
}

// ScreenerConfig defines the hard cut conditions
type ScreenerConfig struct {
	MinMonthlyYield float64 // percent, inclusive (예: 6.0)
	LowerBand       float64 // strike >= spot*LowerBand (예: 0.85)
	UpperBand       float64 // strike <= spot*UpperBand (예: 1.05)
}

// DefaultScreenerConfig returns default configuration
func DefaultScreenerConfig() ScreenerConfig {
	return ScreenerConfig{
		MinMonthlyYield: 6.0,
		LowerBand:       0.85,
		UpperBand:       1.05,
	}
}

// NewScreener creates a new screener
func NewScreener(config ScreenerConfig, names NameResolver, logger *logger.Logger) *Screener {
	return &Screener{
		config: config,
		names:  names,
		logger: logger,
	}
}

// Config returns the screener configuration
func (s *Screener) Config() ScreenerConfig {
	return s.config
}

// Screen returns the puts of one underlying that sit inside the moneyness band
// and reach the minimum monthly yield, highest yield first.
// An expiration on or before the evaluation date yields an empty result, not an error.
func (s *Screener) Screen(
	quote contracts.UnderlyingQuote,
	puts []contracts.OptionCandidate,
	expiration string,
	now time.Time,
) ([]contracts.ScreeningResult, error) {
	days, err := DaysToExpiration(expiration, now)
	if err != nil {
		return nil, err
	}

	results := make([]contracts.ScreeningResult, 0)
	if days <= 0 {
		s.logger.WithFields(map[string]interface{}{
			"symbol":     quote.Symbol,
			"expiration": expiration,
			"dte":        days,
		}).Debug("Expiration not in the future, skipping")
		return results, nil
	}

	filtered := make(map[string]int) // reason -> count
	lower := quote.Price * s.config.LowerBand
	upper := quote.Price * s.config.UpperBand
	name := s.displayName(quote.Symbol)

	for _, put := range puts {
		if put.Strike < lower || put.Strike > upper {
			filtered["band"]++
			continue
		}

		if !put.HasValidPrice() {
			filtered["price"]++
			continue
		}

		yield := MonthlyYield(put.LastPrice, put.Strike, days)
		if yield < s.config.MinMonthlyYield {
			filtered["yield"]++
			continue
		}

		results = append(results, NewScreeningResult(quote, name, expiration, put, days))
	}

	results = SortByYield(results)

	s.logger.WithFields(map[string]interface{}{
		"symbol":      quote.Symbol,
		"spot":        quote.Price,
		"expiration":  expiration,
		"dte":         days,
		"total_input": len(puts),
		"passed":      len(results),
		"filters":     filtered,
	}).Debug("Ticker screened")

	return results, nil
}

func (s *Screener) displayName(symbol string) string {
	if s.names == nil {
		return symbol
	}
	return s.names.DisplayName(symbol)
}

// DaysToExpiration counts whole calendar days from now's date to expiration.
// Both sides are compared as dates, so the time of day of now does not matter.
func DaysToExpiration(expiration string, now time.Time) (int, error) {
	exp, err := time.Parse(ExpirationLayout, expiration)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidExpiration, expiration, err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(today).Hours() / 24), nil
}
