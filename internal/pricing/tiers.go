package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownTier is returned for a day count outside the published tiers.
var ErrUnknownTier = errors.New("pricing: unknown tier")

// Tier is a fixed-length price preview shown on an item page.
type Tier struct {
	Days       int             `json:"dias"`
	Multiplier decimal.Decimal `json:"multiplicador"`
	Price      decimal.Decimal `json:"preco"`
}

var (
	tierDays        = []int{1, 3, 7, 30}
	tierMultipliers = map[int]decimal.Decimal{
		1:  decimal.NewFromInt(1),
		3:  decimal.RequireFromString("0.90"),
		7:  decimal.RequireFromString("0.85"),
		30: decimal.RequireFromString("0.80"),
	}
)

// TieredPrice returns the discounted price for one of the published tiers
// (1, 3, 7 or 30 days).
func TieredPrice(dailyRate decimal.Decimal, days int) (decimal.Decimal, error) {
	multiplier, ok := tierMultipliers[days]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d days", ErrUnknownTier, days)
	}
	return ClampRate(dailyRate).Mul(decimal.NewFromInt(int64(days))).Mul(multiplier), nil
}

// Tiers lists every published tier for dailyRate, shortest first.
func Tiers(dailyRate decimal.Decimal) []Tier {
	out := make([]Tier, 0, len(tierDays))
	for _, days := range tierDays {
		price, _ := TieredPrice(dailyRate, days)
		out = append(out, Tier{Days: days, Multiplier: tierMultipliers[days], Price: price})
	}
	return out
}
