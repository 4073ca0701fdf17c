package contracts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionCandidate_HasValidPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  bool
	}{
		{"positive", 1.25, true},
		{"zero", 0, false},
		{"negative", -0.5, false},
		{"missing", math.NaN(), false},
		{"infinite", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := OptionCandidate{Strike: 100, LastPrice: tt.price}
			assert.Equal(t, tt.want, c.HasValidPrice())
		})
	}
}

func TestScreeningResult_Moneyness(t *testing.T) {
	r := ScreeningResult{Strike: 90, SpotPrice: 100}
	assert.InDelta(t, 0.9, r.Moneyness(), 1e-9)
	assert.Equal(t, 9000.0, r.CapitalRequired())

	assert.Equal(t, 0.0, ScreeningResult{Strike: 90}.Moneyness())
}
