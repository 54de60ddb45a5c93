package rentals

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentbrasil/rentbrasil/internal/pricing"
)

// RevenueWindow is the number of most recent months kept by MonthlyRevenue.
const RevenueWindow = 12

// PotentialRevenueRate is the share of revenue reported as potential revenue.
var PotentialRevenueRate = decimal.RequireFromString("0.10")

// Breakdown counts rentals by payment status.
type Breakdown struct {
	Paid    int `json:"pago"`
	Pending int `json:"pendente"`
}

// MonthlyPoint is revenue attributed to one calendar month (YYYY-MM).
type MonthlyPoint struct {
	Month   string          `json:"mes"`
	Revenue decimal.Decimal `json:"receita"`
}

// StatusBreakdown counts paid rentals and everything else as pending, so
// Paid+Pending always equals len(list).
func StatusBreakdown(list []Rental) Breakdown {
	var b Breakdown
	for _, r := range list {
		if r.PaymentStatus.IsPaid() {
			b.Paid++
		} else {
			b.Pending++
		}
	}
	return b
}

// TotalMoneyCirculated sums the total cost of paid rentals.
func TotalMoneyCirculated(list []Rental) decimal.Decimal {
	total := decimal.Zero
	for _, r := range list {
		if r.PaymentStatus.IsPaid() {
			total = total.Add(pricing.TotalCost(r.DailyRate, r.StartDate, r.EndDate))
		}
	}
	return total
}

// MonthlyRevenue groups paid revenue by the month the rental started, in loc.
// The whole cost lands in the start month. Only the last RevenueWindow months
// that have revenue are returned, oldest first.
func MonthlyRevenue(list []Rental, loc *time.Location) []MonthlyPoint {
	if loc == nil {
		loc = time.Local
	}
	byMonth := make(map[string]decimal.Decimal)
	for _, r := range list {
		if !r.PaymentStatus.IsPaid() {
			continue
		}
		month := r.StartDate.In(loc).Format("2006-01")
		byMonth[month] = byMonth[month].Add(pricing.TotalCost(r.DailyRate, r.StartDate, r.EndDate))
	}

	points := make([]MonthlyPoint, 0, len(byMonth))
	for month, revenue := range byMonth {
		points = append(points, MonthlyPoint{Month: month, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	if len(points) > RevenueWindow {
		points = points[len(points)-RevenueWindow:]
	}
	return points
}

// MonthlyPotentialRevenue scales each point by PotentialRevenueRate.
func MonthlyPotentialRevenue(points []MonthlyPoint) []MonthlyPoint {
	out := make([]MonthlyPoint, len(points))
	for i, p := range points {
		out[i] = MonthlyPoint{Month: p.Month, Revenue: p.Revenue.Mul(PotentialRevenueRate)}
	}
	return out
}

// Enrich computes the day count and total of one rental.
func Enrich(r Rental) View {
	return View{
		Rental: r,
		Days:   pricing.DaysBetween(r.StartDate, r.EndDate),
		Total:  pricing.TotalCost(r.DailyRate, r.StartDate, r.EndDate),
	}
}

// EnrichAll applies Enrich to every rental.
func EnrichAll(list []Rental) []View {
	out := make([]View, len(list))
	for i, r := range list {
		out[i] = Enrich(r)
	}
	return out
}
