package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// ScopeAdmin is the scope name of the hospital-wide dashboard.
const ScopeAdmin = "admin"

// Pipeline builds dashboards from source snapshots. It keeps no state between calls
// beyond its settings and random source.
type Pipeline struct {
	settings Settings
	rng      Rand
}

// New returns a pipeline. Zero settings fields take their defaults; a nil rng is seeded from the clock.
func New(settings Settings, rng Rand) *Pipeline {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Pipeline{settings: settings.WithDefaults(), rng: rng}
}

// Settings returns the effective settings.
func (p *Pipeline) Settings() Settings {
	return p.settings
}

// Timeline resolves a timeline value against the configured options.
func (p *Pipeline) Timeline(value string) models.TimelineOption {
	return ResolveTimeline(p.settings.Timelines, value, p.settings.FallbackDays)
}

// Run builds the dashboard of src for the selected timeline as of now.
func (p *Pipeline) Run(src models.SourceSnapshot, scope, timeline string, now time.Time) models.Dashboard {
	option := p.Timeline(timeline)
	lower := LowerBound(now, option)

	d := models.Dashboard{
		Scope:       scope,
		Timeline:    option,
		GeneratedAt: now,
		WindowStart: lower,
	}
	d.MedicineData = p.ProcessMedicineData(src.Departments, lower)
	d.SupplyData = p.ProcessSupplyData(src.Departments, lower)
	d.DepartmentData = p.ProcessDepartmentData(src.Departments, src.Patients, lower)
	d.PatientData = p.ProcessPatientData(src.Patients, lower, now)
	d.BillingData = p.ProcessBillingData(src.Billing, src.Patients, lower, now)

	current := models.PeriodTotals{
		TotalPatients: d.TotalPatients,
		TotalUsage:    usageTotal(FilterUsage(NormalizeUsage(src.Departments), lower)),
		TotalRevenue:  d.TotalRevenue,
	}
	previous := p.periodTotals(src, Since(lower).Previous(option.Days))
	d.GrowthMetrics = p.CalculateGrowthMetrics(current, previous)

	return d
}

// CalculateGrowthMetrics compares two periods using the pipeline's settings and random source.
func (p *Pipeline) CalculateGrowthMetrics(current, previous models.PeriodTotals) models.GrowthMetrics {
	return CalculateGrowthMetrics(current, previous, p.rng, p.settings)
}

// Fallback builds the dashboard shown when the store cannot be read: illustrative
// headline numbers, synthesized revenue and hourly traffic, every mock flag set.
func (p *Pipeline) Fallback(scope, timeline string, now time.Time) models.Dashboard {
	option := p.Timeline(timeline)
	lower := LowerBound(now, option)
	fb := p.settings.Fallback

	d := models.Dashboard{
		Scope:       scope,
		Timeline:    option,
		GeneratedAt: now,
		WindowStart: lower,
		Fallback:    true,
	}
	d.MedicineData = models.MedicineData{
		TotalMedicines:     fb.Medicines,
		MedicineUsage:      []models.ChartSeriesPoint{},
		MedicineCategories: []models.ChartSeriesPoint{},
		MedicineBrands:     []models.ChartSeriesPoint{},
	}
	d.SupplyData = models.SupplyData{
		TotalSupplies:    fb.Supplies,
		SupplyUsage:      []models.ChartSeriesPoint{},
		SupplyCategories: []models.ChartSeriesPoint{},
		SupplyBrands:     []models.ChartSeriesPoint{},
	}
	d.DepartmentData = models.DepartmentData{
		DepartmentActivity: []models.ChartSeriesPoint{},
		DepartmentLoad:     []models.ChartSeriesPoint{},
	}

	patients := p.ProcessPatientData(nil, lower, now)
	patients.TotalPatients = fb.Patients
	patients.AveragePerDay = AveragePerDay(float64(fb.Patients), option.Days)
	d.PatientData = patients

	d.BillingData = MockRevenue(nil, lower, now, p.settings, p.rng)
	d.TotalRevenue = decimal.NewFromInt(fb.Revenue)

	d.GrowthMetrics = p.CalculateGrowthMetrics(models.PeriodTotals{
		TotalPatients: fb.Patients,
		TotalRevenue:  d.TotalRevenue,
	}, models.PeriodTotals{TotalRevenue: decimal.Zero})

	return d
}

func (p *Pipeline) periodTotals(src models.SourceSnapshot, w Window) models.PeriodTotals {
	patientAt := func(r models.PatientRecord) string { return r.DateTime }
	usageAt := func(e models.UsageEntry) string { return e.Timestamp }
	billAt := func(b models.BillingRecord) string { return b.Date }

	return models.PeriodTotals{
		TotalPatients: len(filterWindow(NormalizePatients(src.Patients), w, patientAt)),
		TotalUsage:    usageTotal(filterWindow(NormalizeUsage(src.Departments), w, usageAt)),
		TotalRevenue:  SumRevenue(filterWindow(NormalizeBilling(src.Billing), w, billAt), models.BillingPaid),
	}
}
