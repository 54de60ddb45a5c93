// Package dashboard composes the admin analytics snapshot.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentbrasil/rentbrasil/internal/rentals"
	"github.com/rentbrasil/rentbrasil/internal/reviews"
)

// Input is everything Compose needs.
type Input struct {
	PeopleCount int
	ItemCount   int
	Rentals     []rentals.Rental
	Reviews     []reviews.Review
}

// PotentialPoint is the potential revenue of one month.
type PotentialPoint struct {
	Month            string          `json:"mes"`
	PotentialRevenue decimal.Decimal `json:"possivel_receita"`
}

// Stats is the dashboard snapshot.
type Stats struct {
	TotalPeople int `json:"total_pessoas"`
	TotalItems  int `json:"total_itens"`
	// ActiveRentalsCount counts every rental on record, whatever its dates
	// or status.
	ActiveRentalsCount      int                        `json:"locacoes_ativas"`
	TotalMoneyCirculated    decimal.Decimal            `json:"dinheiro_circulado"`
	StatusBreakdown         rentals.Breakdown          `json:"status_locacoes"`
	MonthlyRevenue          []rentals.MonthlyPoint     `json:"receita_mensal"`
	MonthlyPotentialRevenue []PotentialPoint           `json:"possivel_receita_mensal"`
	TopRatedItems           []reviews.LeaderboardEntry `json:"avaliacoes_medias"`
	GeneratedAt             time.Time                  `json:"gerado_em"`
}

// Options tunes Compose.
type Options struct {
	Location    *time.Location
	Leaderboard reviews.LeaderboardOptions
	Now         func() time.Time
}

// Compose builds Stats from raw data. It performs no I/O.
func Compose(in Input, opts Options) Stats {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	revenue := rentals.MonthlyRevenue(in.Rentals, opts.Location)
	potential := rentals.MonthlyPotentialRevenue(revenue)
	potentialPoints := make([]PotentialPoint, len(potential))
	for i, p := range potential {
		potentialPoints[i] = PotentialPoint{Month: p.Month, PotentialRevenue: p.Revenue}
	}

	return Stats{
		TotalPeople:             in.PeopleCount,
		TotalItems:              in.ItemCount,
		ActiveRentalsCount:      len(in.Rentals),
		TotalMoneyCirculated:    rentals.TotalMoneyCirculated(in.Rentals),
		StatusBreakdown:         rentals.StatusBreakdown(in.Rentals),
		MonthlyRevenue:          revenue,
		MonthlyPotentialRevenue: potentialPoints,
		TopRatedItems:           reviews.TopRatedLeaderboard(in.Reviews, opts.Leaderboard),
		GeneratedAt:             now().UTC(),
	}
}
