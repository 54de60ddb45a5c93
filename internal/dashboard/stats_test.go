package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbrasil/rentbrasil/internal/pricing"
	"github.com/rentbrasil/rentbrasil/internal/rentals"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
)

func location(t *testing.T) *time.Location {
	t.Helper()
	loc, err := pricing.LoadLocation("")
	require.NoError(t, err)
	return loc
}

func date(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := pricing.ParseDate(v, location(t))
	require.NoError(t, err)
	return d
}

func sampleInput(t *testing.T) Input {
	return Input{
		PeopleCount: 4,
		ItemCount:   3,
		Rentals: []rentals.Rental{
			{ID: "r1", ItemID: "A", StartDate: date(t, "2024-01-15"), EndDate: date(t, "2024-01-17"), PaymentStatus: rentals.StatusPaid, DailyRate: decimal.RequireFromString("25.00")},
			{ID: "r2", ItemID: "B", StartDate: date(t, "2024-01-20"), EndDate: date(t, "2024-01-24"), PaymentStatus: rentals.StatusPaid, DailyRate: decimal.RequireFromString("15.00")},
			{ID: "r3", ItemID: "B", StartDate: date(t, "2024-01-02"), EndDate: date(t, "2024-01-06"), PaymentStatus: rentals.StatusPending, DailyRate: decimal.RequireFromString("10.00")},
		},
		Reviews: []reviews.Review{
			{ItemID: "A", ItemName: "Furadeira", Stars: 5},
			{ItemID: "A", ItemName: "Furadeira", Stars: 4},
			{ItemID: "B", ItemName: "Barraca", Stars: 3},
		},
	}
}

func TestCompose(t *testing.T) {
	fixed := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	stats := Compose(sampleInput(t), Options{Location: location(t), Now: func() time.Time { return fixed }})

	assert.Equal(t, 4, stats.TotalPeople)
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 3, stats.ActiveRentalsCount)
	assert.Equal(t, "150.00", stats.TotalMoneyCirculated.StringFixed(2))
	assert.Equal(t, rentals.Breakdown{Paid: 2, Pending: 1}, stats.StatusBreakdown)

	require.Len(t, stats.MonthlyRevenue, 1)
	assert.Equal(t, "2024-01", stats.MonthlyRevenue[0].Month)
	require.Len(t, stats.MonthlyPotentialRevenue, 1)
	assert.Equal(t, "15.00", stats.MonthlyPotentialRevenue[0].PotentialRevenue.StringFixed(2))

	require.Len(t, stats.TopRatedItems, 2)
	assert.Equal(t, "4.5", stats.TopRatedItems[0].AverageRating)
	assert.Equal(t, "3.0", stats.TopRatedItems[1].AverageRating)
	assert.Equal(t, fixed, stats.GeneratedAt)
}

func TestComposeEmpty(t *testing.T) {
	stats := Compose(Input{}, Options{})
	assert.Zero(t, stats.ActiveRentalsCount)
	assert.True(t, stats.TotalMoneyCirculated.IsZero())
	assert.Empty(t, stats.MonthlyRevenue)
	assert.Empty(t, stats.TopRatedItems)
}
