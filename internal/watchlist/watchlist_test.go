package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	w := Default()

	require.NoError(t, w.Validate())
	assert.Len(t, w.Tickers, 15)
	assert.Equal(t, "SPY", w.Symbols()[0])
	assert.Equal(t, "PLTR", w.Symbols()[14])
	assert.Equal(t, "Coinbase Global Inc.", w.DisplayName("COIN"))
}

func TestDisplayName_FallsBackToSymbol(t *testing.T) {
	assert.Equal(t, "ZZZZ", Default().DisplayName("ZZZZ"))
}

func TestParse(t *testing.T) {
	data := []byte(`
tickers:
  - symbol: coin
    name: Coinbase Global Inc.
  - symbol: " mstr "
`)

	w, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"COIN", "MSTR"}, w.Symbols())
	assert.Equal(t, "Coinbase Global Inc.", w.DisplayName("COIN"))
	assert.Equal(t, "MSTR", w.DisplayName("MSTR"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown field", "tickers:\n  - symbol: COIN\n    sector: crypto\n"},
		{"empty", "tickers: []\n"},
		{"duplicate", "tickers:\n  - symbol: COIN\n  - symbol: coin\n"},
		{"missing symbol", "tickers:\n  - name: Nameless\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tickers:\n  - symbol: SPY\n    name: SPDR S&P 500 ETF\n"), 0o600))

	w, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"SPY"}, w.Symbols())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
