package watchlist

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ticker is one underlying on the watchlist
type Ticker struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Watchlist is the ordered set of underlyings to screen
// ⭐ SSOT: 종목명 테이블은 여기서만
type Watchlist struct {
	Tickers []Ticker `yaml:"tickers"`

	names map[string]string
}

// Default returns the built-in watchlist
func Default() *Watchlist {
	w := &Watchlist{Tickers: []Ticker{
		{Symbol: "SPY", Name: "SPDR S&P 500 ETF"},
		{Symbol: "QQQ", Name: "Invesco QQQ ETF"},
		{Symbol: "IWM", Name: "iShares Russell 2000 ETF"},
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corp."},
		{Symbol: "GOOGL", Name: "Alphabet Inc."},
		{Symbol: "AMZN", Name: "Amazon.com Inc."},
		{Symbol: "TSLA", Name: "Tesla Inc."},
		{Symbol: "NVDA", Name: "NVIDIA Corp."},
		{Symbol: "META", Name: "Meta Platforms Inc."},
		{Symbol: "AMD", Name: "Advanced Micro Devices"},
		{Symbol: "NFLX", Name: "Netflix Inc."},
		{Symbol: "BABA", Name: "Alibaba Group"},
		{Symbol: "COIN", Name: "Coinbase Global Inc."},
		{Symbol: "PLTR", Name: "Palantir Technologies"},
	}}
	w.index()
	return w
}

// Load reads a watchlist YAML file.
// Unknown fields are rejected so typos fail loudly.
func Load(path string) (*Watchlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates watchlist YAML
func Parse(data []byte) (*Watchlist, error) {
	var w Watchlist
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("decode watchlist: %w", err)
	}

	for i := range w.Tickers {
		w.Tickers[i].Symbol = strings.ToUpper(strings.TrimSpace(w.Tickers[i].Symbol))
		w.Tickers[i].Name = strings.TrimSpace(w.Tickers[i].Name)
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	w.index()
	return &w, nil
}

// Validate checks that the watchlist is non-empty and has unique symbols
func (w *Watchlist) Validate() error {
	if len(w.Tickers) == 0 {
		return fmt.Errorf("watchlist has no tickers")
	}

	seen := make(map[string]bool, len(w.Tickers))
	for i, t := range w.Tickers {
		if t.Symbol == "" {
			return fmt.Errorf("ticker #%d has no symbol", i+1)
		}
		if seen[t.Symbol] {
			return fmt.Errorf("duplicate ticker %s", t.Symbol)
		}
		seen[t.Symbol] = true
	}

	return nil
}

// Symbols returns the ticker symbols in watchlist order
func (w *Watchlist) Symbols() []string {
	symbols := make([]string, 0, len(w.Tickers))
	for _, t := range w.Tickers {
		symbols = append(symbols, t.Symbol)
	}
	return symbols
}

// DisplayName returns the configured name of symbol, or symbol itself
func (w *Watchlist) DisplayName(symbol string) string {
	if name, ok := w.names[symbol]; ok && name != "" {
		return name
	}
	return symbol
}

func (w *Watchlist) index() {
	w.names = make(map[string]string, len(w.Tickers))
	for _, t := range w.Tickers {
		w.names[t.Symbol] = t.Name
	}
}
