// Package export renders dashboard snapshots for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rentbrasil/rentbrasil/internal/dashboard"
)

// WriteStatsCSV serialises the dashboard snapshot as a sectioned CSV: the
// summary metrics, then the monthly series, then the leaderboard.
func WriteStatsCSV(w io.Writer, stats dashboard.Stats) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	records := [][]string{
		{"Metric", "Value"},
		{"Total People", strconv.Itoa(stats.TotalPeople)},
		{"Total Items", strconv.Itoa(stats.TotalItems)},
		{"Rentals", strconv.Itoa(stats.ActiveRentalsCount)},
		{"Money Circulated", stats.TotalMoneyCirculated.StringFixed(2)},
		{"Paid Rentals", strconv.Itoa(stats.StatusBreakdown.Paid)},
		{"Pending Rentals", strconv.Itoa(stats.StatusBreakdown.Pending)},
		{},
		{"Month", "Revenue", "Potential Revenue"},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	potential := make(map[string]string, len(stats.MonthlyPotentialRevenue))
	for _, p := range stats.MonthlyPotentialRevenue {
		potential[p.Month] = p.PotentialRevenue.StringFixed(2)
	}
	for _, point := range stats.MonthlyRevenue {
		if err := writer.Write([]string{point.Month, point.Revenue.StringFixed(2), potential[point.Month]}); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return err
	}
	if err := writer.Write([]string{"Item", "Average Rating"}); err != nil {
		return err
	}
	for _, entry := range stats.TopRatedItems {
		if err := writer.Write([]string{entry.ItemName, entry.AverageRating}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
