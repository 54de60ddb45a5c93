// Package pricing computes rental durations and daily-rate based prices.
package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

// DefaultTimezone is the reference zone used for calendar-day arithmetic.
const DefaultTimezone = "America/Sao_Paulo"

// DateLayout is the wire format of rental dates.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// ErrInvalidDate reports a date string that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("pricing: invalid date")

// LoadLocation resolves the reference location, defaulting to DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("pricing: load location %q: %w", name, err)
	}
	return loc, nil
}

// ParseDate parses a calendar date as local midnight in loc. Timestamps are
// truncated to their date part first so "2024-01-15T00:00:00Z" still lands on
// the 15th in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	if len(value) > len(DateLayout) && value[len(DateLayout)] == 'T' {
		value = value[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DaysBetween returns the inclusive number of billable days between start and
// end. A same-day rental is one day. The order of the arguments does not
// matter.
func DaysBetween(start, end time.Time) int {
	diff := wallClock(end).Sub(wallClock(start))
	if diff < 0 {
		diff = -diff
	}
	days := diff / day
	if diff%day != 0 {
		days++
	}
	return int(days) + 1
}

// wallClock drops the zone offset so DST shifts never change the day count.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ClampRate maps negative rates to zero.
func ClampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

// TotalCost is dailyRate multiplied by the inclusive day count.
func TotalCost(dailyRate decimal.Decimal, start, end time.Time) decimal.Decimal {
	return ClampRate(dailyRate).Mul(decimal.NewFromInt(int64(DaysBetween(start, end))))
}
