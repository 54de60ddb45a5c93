package reviews

import (
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

// LeaderboardSize is the default number of leaderboard entries.
const LeaderboardSize = 5

// MissingItemName labels reviews whose item could not be joined.
const MissingItemName = "N/A"

// Summary is the rating of one item.
type Summary struct {
	Average float64 `json:"avaliacao_media"`
	Count   int     `json:"total_avaliacoes"`
}

// LeaderboardEntry is one row of the top rated list. AverageRating keeps one
// decimal place, e.g. "4.5".
type LeaderboardEntry struct {
	ItemID        string `json:"item_id,omitempty"`
	ItemName      string `json:"nome"`
	AverageRating string `json:"media"`
}

// LeaderboardOptions tunes TopRatedLeaderboard.
type LeaderboardOptions struct {
	// Limit defaults to LeaderboardSize.
	Limit int
	// MergeByName groups by item name instead of item ID, merging distinct
	// items that share a name. ItemID is left empty in that mode and the
	// average is rounded from the float64 mean, so 87/20 (4.35, stored as
	// 4.34999...) reads "4.3" instead of the exact half-up "4.4".
	MergeByName bool
}

// AverageForItem returns the mean star rating of itemID, or 0 without reviews.
func AverageForItem(list []Review, itemID string) float64 {
	return Summaries(list)[itemID].Average
}

// RatingCount returns the number of reviews of itemID.
func RatingCount(list []Review, itemID string) int {
	return Summaries(list)[itemID].Count
}

// Summaries indexes averages and counts by item ID in one pass.
func Summaries(list []Review) map[string]Summary {
	type acc struct{ sum, n int }
	accs := make(map[string]*acc)
	for _, r := range list {
		a, ok := accs[r.ItemID]
		if !ok {
			a = &acc{}
			accs[r.ItemID] = a
		}
		a.sum += r.Stars
		a.n++
	}
	out := make(map[string]Summary, len(accs))
	for id, a := range accs {
		out[id] = Summary{Average: float64(a.sum) / float64(a.n), Count: a.n}
	}
	return out
}

// TopRatedLeaderboard ranks items by average rating, highest first. Items are
// ordered by the one-decimal value they display; ties keep first-seen order.
func TopRatedLeaderboard(list []Review, opts LeaderboardOptions) []LeaderboardEntry {
	limit := opts.Limit
	if limit <= 0 {
		limit = LeaderboardSize
	}

	type group struct {
		id, name string
		sum, n   int64
	}
	var order []*group
	groups := make(map[string]*group)
	for _, r := range list {
		name := r.ItemName
		if name == "" {
			name = MissingItemName
		}
		key := r.ItemID
		if opts.MergeByName {
			key = name
		}
		g, ok := groups[key]
		if !ok {
			g = &group{id: r.ItemID, name: name}
			if opts.MergeByName {
				g.id = ""
			}
			groups[key] = g
			order = append(order, g)
		}
		g.sum += int64(r.Stars)
		g.n++
	}

	type ranked struct {
		entry   LeaderboardEntry
		rounded decimal.Decimal
	}
	rows := make([]ranked, 0, len(order))
	for _, g := range order {
		var label string
		if opts.MergeByName {
			label = floatLabel(g.sum, g.n)
		} else {
			label = decimal.NewFromInt(g.sum).Div(decimal.NewFromInt(g.n)).Round(1).StringFixed(1)
		}
		rows = append(rows, ranked{
			entry:   LeaderboardEntry{ItemID: g.id, ItemName: g.name, AverageRating: label},
			rounded: decimal.RequireFromString(label),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].rounded.GreaterThan(rows[j].rounded) })

	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]LeaderboardEntry, len(rows))
	for i, r := range rows {
		out[i] = r.entry
	}
	return out
}

// floatLabel rounds the exact binary value of the float64 mean half-up to one
// place.
func floatLabel(sum, n int64) string {
	exact := new(big.Float).SetFloat64(float64(sum) / float64(n)).Text('f', 64)
	return decimal.RequireFromString(exact).Round(1).StringFixed(1)
}
