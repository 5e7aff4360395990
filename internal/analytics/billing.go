package analytics

import (
	"time"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// ProcessBillingData builds revenue series for bills dated since lowerBound. When the billing
// collection is empty, revenue is synthesized from the admitted patients and flagged as mock data.
func (p *Pipeline) ProcessBillingData(billing, patients map[string]any, lowerBound, now time.Time) models.BillingData {
	if len(billing) == 0 {
		admitted := FilterPatients(NormalizePatients(patients), lowerBound)
		return MockRevenue(admitted, lowerBound, now, p.settings, p.rng)
	}

	bills := FilterBilling(NormalizeBilling(billing), lowerBound)
	paid := make([]models.BillingRecord, 0, len(bills))
	for _, b := range bills {
		if b.Status == models.BillingPaid {
			paid = append(paid, b)
		}
	}
	at := billTime(now.Location())

	return models.BillingData{
		TotalRevenue:   SumRevenue(bills, models.BillingPaid),
		PendingRevenue: SumRevenue(bills, models.BillingPending),
		DailyRevenue: BuildSeries(paid, at, billAmount, RangeSpec{
			Granularity: GranularityDay, Buckets: p.settings.DailyBuckets, End: now,
		}),
		WeeklyRevenue: BuildSeries(paid, at, billAmount, RangeSpec{
			Granularity: GranularityWeek, Buckets: p.settings.WeeklyBuckets, End: now,
		}),
	}
}

func billTime(loc *time.Location) TimeFunc[models.BillingRecord] {
	return func(b models.BillingRecord) (time.Time, bool) {
		t, ok := ParseTimestamp(b.Date)
		if !ok {
			return time.Time{}, false
		}
		return t.In(loc), true
	}
}

func billAmount(b models.BillingRecord) float64 {
	return b.Amount.InexactFloat64()
}
