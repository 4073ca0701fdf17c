package marketdata

import (
	"fmt"
	"math"
	"time"
)

// MonthEndExpiration returns the last Friday of now's month, moving to later
// months until it is at least minDays calendar days away.
// 월말 만기: 해당 월의 마지막 금요일
func MonthEndExpiration(now time.Time, minDays int) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for offset := 0; ; offset++ {
		exp := lastFriday(today.Year(), today.Month()+time.Month(offset))
		if int(exp.Sub(today).Hours()/24) >= minDays {
			return exp.Format("2006-01-02")
		}
	}
}

// lastFriday normalizes month overflow the way time.Date does
func lastFriday(year int, month time.Month) time.Time {
	// day 0 of the next month is the last day of this month
	d := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Friday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// OCCSymbol builds the OCC option symbol of a put, e.g. COIN260327P00170000
func OCCSymbol(symbol, expiration string, strike float64) (string, error) {
	exp, err := time.Parse("2006-01-02", expiration)
	if err != nil {
		return "", fmt.Errorf("parse expiration %q: %w", expiration, err)
	}
	return fmt.Sprintf("%s%sP%08d", symbol, exp.Format("060102"), int64(math.Round(strike*1000))), nil
}
