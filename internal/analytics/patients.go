package analytics

import (
	"math"
	"time"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// ProcessPatientData builds traffic and demographic series for patients admitted since lowerBound.
func (p *Pipeline) ProcessPatientData(patients map[string]any, lowerBound, now time.Time) models.PatientData {
	admitted := FilterPatients(NormalizePatients(patients), lowerBound)
	at := patientTime(now.Location())

	hours := NewGroups()
	for h := 0; h < 24; h++ {
		hours.Add(HourLabel(h), 0)
	}
	weekdays := NewGroups()
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdays.Add(d.String(), 0)
	}
	for _, r := range admitted {
		t, _ := at(r)
		hours.Add(HourLabel(t.Hour()), 1)
		weekdays.Add(t.Weekday().String(), 1)
	}

	data := models.PatientData{
		TotalPatients:      len(admitted),
		AgeDistribution:    Colorize(GroupBy(admitted, byAgeBucket, CountOf[models.PatientRecord]).OrderedBy(AgeBuckets), p.settings.DemographicPalette),
		GenderDistribution: Colorize(Aggregate(admitted, byGender, CountOf[models.PatientRecord]), p.settings.DemographicPalette),
		DailyPatients: BuildSeries(admitted, at, CountOf[models.PatientRecord], RangeSpec{
			Granularity: GranularityDay, Buckets: p.settings.DailyBuckets, End: now,
		}),
		MonthlyPatients: BuildSeries(admitted, at, CountOf[models.PatientRecord], RangeSpec{
			Granularity: GranularityMonth, Buckets: p.settings.MonthlyBuckets, End: now,
		}),
		HourlyPattern:     hours.Points(),
		PeakHour:          NotAvailable,
		PeakDay:           NotAvailable,
		BusiestDepartment: Peak(GroupBy(admitted, withDepartment, CountOf[models.PatientRecord])),
		AveragePerDay:     AveragePerDay(float64(len(admitted)), civilDays(lowerBound, now)),
	}

	if len(admitted) == 0 {
		data.HourlyPattern = MockHourlyPattern(p.settings, p.rng)
		data.MockHourly = true
		return data
	}

	data.PeakHour = Peak(hours)
	data.PeakDay = Peak(weekdays)
	return data
}

func patientTime(loc *time.Location) TimeFunc[models.PatientRecord] {
	return func(r models.PatientRecord) (time.Time, bool) {
		t, ok := ParseTimestamp(r.DateTime)
		if !ok {
			return time.Time{}, false
		}
		return t.In(loc), true
	}
}

func civilDays(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func byAgeBucket(r models.PatientRecord) (string, bool) { return AgeBucket(r.Age) }

func byGender(r models.PatientRecord) (string, bool) { return r.Gender, true }

func withDepartment(r models.PatientRecord) (string, bool) { return r.Department, r.Department != "" }
