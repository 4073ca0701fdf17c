package marketdata

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/wonny/putscreener/internal/contracts"
)

//go:embed sample_chains.yaml
var sampleChainsYAML []byte

// ErrUnknownSymbol is returned when the source has no data for a symbol
var ErrUnknownSymbol = errors.New("unknown symbol")

type sampleFile struct {
	Underlyings []sampleUnderlying `yaml:"underlyings"`
}

type sampleUnderlying struct {
	Symbol string      `yaml:"symbol"`
	Spot   float64     `yaml:"spot"`
	Puts   []samplePut `yaml:"puts"`
}

type samplePut struct {
	Strike    float64  `yaml:"strike"`
	LastPrice *float64 `yaml:"last_price"`
}

// SampleSource serves a fixed dataset through contracts.MarketDataSource.
// Strikes and premiums are static; contract symbols follow the requested expiration.
type SampleSource struct {
	underlyings map[string]sampleUnderlying
}

var _ contracts.MarketDataSource = (*SampleSource)(nil)

// NewSampleSource loads the embedded sample dataset
func NewSampleSource() (*SampleSource, error) {
	return NewSampleSourceFromYAML(sampleChainsYAML)
}

// NewSampleSourceFromYAML loads a dataset in the sample_chains.yaml layout
func NewSampleSourceFromYAML(data []byte) (*SampleSource, error) {
	var file sampleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode sample chains: %w", err)
	}

	s := &SampleSource{underlyings: make(map[string]sampleUnderlying, len(file.Underlyings))}
	for _, u := range file.Underlyings {
		if u.Spot <= 0 {
			return nil, fmt.Errorf("sample %s: spot must be positive", u.Symbol)
		}
		s.underlyings[u.Symbol] = u
	}

	return s, nil
}

// OptionChain implements contracts.MarketDataSource
func (s *SampleSource) OptionChain(ctx context.Context, symbol, expiration string) (*contracts.OptionChain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, ok := s.underlyings[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	chain := &contracts.OptionChain{
		Quote:      contracts.UnderlyingQuote{Symbol: symbol, Price: u.Spot},
		Expiration: expiration,
		Puts:       make([]contracts.OptionCandidate, 0, len(u.Puts)),
	}

	for _, p := range u.Puts {
		occ, err := OCCSymbol(symbol, expiration, p.Strike)
		if err != nil {
			return nil, err
		}

		price := math.NaN()
		if p.LastPrice != nil {
			price = *p.LastPrice
		}

		chain.Puts = append(chain.Puts, contracts.OptionCandidate{
			ContractSymbol: occ,
			Strike:         p.Strike,
			LastPrice:      price,
			Expiration:     expiration,
		})
	}

	return chain, nil
}
