package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// MockRevenue synthesizes revenue with one draw per daily and weekly chart bucket, so
// every point lies inside a single rate band. A bucket is priced with the band of the
// department its patients share; a bucket without patients uses the department shared
// by all patients. Mixed or missing departments use the default band. Total revenue is
// the sum of the weekly draws for weeks overlapping [lowerBound, now].
func MockRevenue(patients []models.PatientRecord, lowerBound, now time.Time, settings Settings, rng Rand) models.BillingData {
	at := patientTime(now.Location())
	fallback := settings.bandOf(departmentsOf(patients, at, nil))

	daily := RangeSpec{Granularity: GranularityDay, Buckets: settings.DailyBuckets, End: now}
	weekly := RangeSpec{Granularity: GranularityWeek, Buckets: settings.WeeklyBuckets, End: now}

	d := models.BillingData{
		TotalRevenue:   decimal.Zero,
		PendingRevenue: decimal.Zero,
		MockData:       true,
	}

	d.DailyRevenue, _ = mockSeries(patients, at, daily, fallback, settings, rng)

	var starts []time.Time
	d.WeeklyRevenue, starts = mockSeries(patients, at, weekly, fallback, settings, rng)
	for i, start := range starts {
		if start.AddDate(0, 0, 7).After(lowerBound) {
			d.TotalRevenue = d.TotalRevenue.Add(decimal.NewFromFloat(d.WeeklyRevenue[i].Count))
		}
	}

	return d
}

func mockSeries(patients []models.PatientRecord, at TimeFunc[models.PatientRecord], spec RangeSpec, fallback RateBand, settings Settings, rng Rand) ([]models.ChartSeriesPoint, []time.Time) {
	starts := BucketStarts(spec)
	points := make([]models.ChartSeriesPoint, len(starts))
	for i, start := range starts {
		band := fallback
		inBucket := func(t time.Time) bool { return bucketStart(t, spec.Granularity).Equal(start) }
		if depts := departmentsOf(patients, at, inBucket); len(depts) > 0 {
			band = settings.bandOf(depts)
		}
		points[i] = models.ChartSeriesPoint{
			Label: BucketLabel(start, spec.Granularity),
			Count: float64(between(rng, band.Min, band.Max)),
		}
	}
	return points, starts
}

// departmentsOf collects the lower-cased departments of dated patients accepted by keep.
func departmentsOf(patients []models.PatientRecord, at TimeFunc[models.PatientRecord], keep func(time.Time) bool) map[string]struct{} {
	depts := make(map[string]struct{})
	for _, p := range patients {
		t, ok := at(p)
		if !ok || (keep != nil && !keep(t)) {
			continue
		}
		depts[strings.ToLower(strings.TrimSpace(p.Department))] = struct{}{}
	}
	return depts
}

// bandOf is the band of the only department in depts, or the default band.
func (s Settings) bandOf(depts map[string]struct{}) RateBand {
	if len(depts) != 1 {
		return s.DefaultRateBand
	}
	for dept := range depts {
		return s.RateBandFor(dept)
	}
	return s.DefaultRateBand
}

// MockHourlyPattern synthesizes a 24 hour admission curve inside the configured band.
func MockHourlyPattern(settings Settings, rng Rand) []models.ChartSeriesPoint {
	points := make([]models.ChartSeriesPoint, 24)
	for hour := range points {
		points[hour] = models.ChartSeriesPoint{
			Label: HourLabel(hour),
			Count: float64(between(rng, settings.HourlyMockMin, settings.HourlyMockMax)),
		}
	}
	return points
}

// HourLabel formats an hour of day as HH:00.
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
