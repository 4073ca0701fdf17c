package selection

import (
	"sort"

	"github.com/wonny/putscreener/internal/contracts"
)

// SortByYield returns a copy of results ordered by MonthlyYield, highest first.
// The sort is stable: equal yields keep their input order, which the top-N
// selection depends on.
// ⭐ SSOT: 수익률 정렬 규칙은 여기서만
func SortByYield(results []contracts.ScreeningResult) []contracts.ScreeningResult {
	sorted := make([]contracts.ScreeningResult, len(results))
	copy(sorted, results)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MonthlyYield > sorted[j].MonthlyYield
	})

	return sorted
}

// Top returns the n highest-yield results using the SortByYield order
func Top(results []contracts.ScreeningResult, n int) []contracts.ScreeningResult {
	sorted := SortByYield(results)
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
