package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// NotAvailable labels an argmax over an empty set.
const NotAvailable = "N/A"

// Growth returns the percentage change from previous to current, rounded to one decimal.
// Without a previous value it returns a placeholder drawn from [min, max].
func Growth(current, previous float64, rng Rand, min, max float64) float64 {
	if previous <= 0 || math.IsNaN(previous) || math.IsNaN(current) {
		return round1(uniform(rng, min, max))
	}
	return round1((current - previous) / previous * 100)
}

// CalculateGrowthMetrics compares two periods.
func CalculateGrowthMetrics(current, previous models.PeriodTotals, rng Rand, settings Settings) models.GrowthMetrics {
	return models.GrowthMetrics{
		PatientGrowth: Growth(float64(current.TotalPatients), float64(previous.TotalPatients), rng, settings.GrowthMin, settings.GrowthMax),
		UsageGrowth:   Growth(float64(current.TotalUsage), float64(previous.TotalUsage), rng, settings.GrowthMin, settings.GrowthMax),
		RevenueGrowth: Growth(current.TotalRevenue.InexactFloat64(), previous.TotalRevenue.InexactFloat64(), rng, settings.GrowthMin, settings.GrowthMax),
	}
}

// Peak returns the key with the highest count, or N/A when there is none.
func Peak(groups *Groups) string {
	if key, ok := groups.ArgMax(); ok {
		return key
	}
	return NotAvailable
}

// AveragePerDay divides total across days, rounded to one decimal. Zero days yields zero.
func AveragePerDay(total float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return round1(total / float64(days))
}

// SumRevenue adds the amounts of bills with the given status.
func SumRevenue(bills []models.BillingRecord, status string) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		if b.Status == status {
			total = total.Add(b.Amount)
		}
	}
	return total
}

func round1(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Round(f*10) / 10
}
