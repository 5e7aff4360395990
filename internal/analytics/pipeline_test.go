package analytics

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

func hospitalSnapshot() models.SourceSnapshot {
	return models.SourceSnapshot{
		Departments: map[string]any{
			"Emergency": department(
				keyed(
					usage("Paracetamol", 10.0, "medicines", daysAgo(1)),
					usage("Paracetamol", "5", "medicines", daysAgo(2)),
					usage("Ibuprofen", 4.0, "medicines", daysAgo(3)),
					usage("Gauze", 6.0, "supplies", daysAgo(1)),
					usage("Morphine", 50.0, "medicines", daysAgo(40)),
				),
				keyed(
					map[string]any{"itemName": "Paracetamol", "category": "Analgesic", "brand": "Biogesic", "quantity": 100.0},
					map[string]any{"itemName": "Ibuprofen", "category": "Analgesic", "brand": "Advil", "quantity": 50.0},
				),
				keyed(
					map[string]any{"itemName": "Gauze", "category": "Wound Care", "quantity": 300.0},
				),
			),
			"ICU": department(
				keyed(
					usage("Heparin", 3.0, "medicines", daysAgo(2)),
					usage("Syringe", 20.0, "supplies", daysAgo(4)),
				),
				keyed(
					map[string]any{"itemName": "Heparin", "category": "Anticoagulant", "brand": "Generic", "quantity": 25.0},
				),
				nil,
			),
		},
		Patients: keyed(
			patient("P1", 72.0, "Male", "Emergency", daysAgo(1)),
			patient("P2", 0.0, "female", "Emergency", daysAgo(1)),
			patient("P3", "28", "F", "ICU", daysAgo(2)),
			patient("P4", 45.0, "", "Emergency", daysAgo(10)),
		),
		Billing: keyed(
			map[string]any{"amount": 12000.0, "status": "paid", "date": daysAgo(1), "department": "Emergency", "patientId": "P1"},
			map[string]any{"amount": 3000.0, "status": "pending", "date": daysAgo(2), "department": "ICU"},
			map[string]any{"amount": 8000.0, "status": "paid", "date": daysAgo(3), "patientId": "P2"},
			map[string]any{"amount": 9000.0, "status": "paid", "date": daysAgo(10), "department": "ICU"},
		),
	}
}

func TestProcessMedicineData_EmptyDepartments(t *testing.T) {
	got := newTestPipeline().ProcessMedicineData(map[string]any{}, testNow.AddDate(0, 0, -7))

	assert.Equal(t, 0, got.TotalMedicines)
	assert.NotNil(t, got.MedicineUsage)
	assert.Empty(t, got.MedicineUsage)
	assert.NotNil(t, got.MedicineCategories)
	assert.Empty(t, got.MedicineCategories)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalMedicines":0,"medicineUsage":[],"medicineCategories":[],"medicineBrands":[]}`, string(out))
}

func TestProcessMedicineData(t *testing.T) {
	src := hospitalSnapshot()
	got := newTestPipeline().ProcessMedicineData(src.Departments, testNow.AddDate(0, 0, -7))

	assert.Equal(t, 3, got.TotalMedicines)
	assert.Equal(t, []string{"Paracetamol", "Ibuprofen", "Heparin"}, labelsOf(got.MedicineUsage))
	assert.Equal(t, 15.0, got.MedicineUsage[0].Count)
	assert.Equal(t, MedicinePalette[0], got.MedicineUsage[0].Color)

	assert.Equal(t, []models.ChartSeriesPoint{
		{Label: "Analgesic", Count: 150, Color: CategoryPalette[0]},
		{Label: "Anticoagulant", Count: 25, Color: CategoryPalette[1]},
	}, got.MedicineCategories)
	assert.Equal(t, []string{"Biogesic", "Advil", "Generic"}, labelsOf(got.MedicineBrands))
}

func TestProcessMedicineData_RoundTrip(t *testing.T) {
	src := hospitalSnapshot()
	lower := testNow.AddDate(0, 0, -7)
	got := newTestPipeline().ProcessMedicineData(src.Departments, lower)

	entries := usageOfType(FilterUsage(NormalizeUsage(src.Departments), lower), models.InventoryMedicines)
	assert.Equal(t, float64(usageTotal(entries)), Total(got.MedicineUsage))
}

func TestProcessSupplyData(t *testing.T) {
	src := hospitalSnapshot()
	got := newTestPipeline().ProcessSupplyData(src.Departments, testNow.AddDate(0, 0, -7))

	assert.Equal(t, 1, got.TotalSupplies)
	assert.Equal(t, []string{"Syringe", "Gauze"}, labelsOf(got.SupplyUsage))
	assert.Equal(t, SupplyPalette[0], got.SupplyUsage[0].Color)
	assert.Equal(t, []string{"Wound Care"}, labelsOf(got.SupplyCategories))
}

func TestProcessDepartmentData(t *testing.T) {
	src := hospitalSnapshot()
	got := newTestPipeline().ProcessDepartmentData(src.Departments, src.Patients, testNow.AddDate(0, 0, -7))

	assert.Equal(t, 2, got.DepartmentCount)
	assert.Equal(t, []models.ChartSeriesPoint{
		{Label: "Emergency", Count: 25, Color: CategoryPalette[0]},
		{Label: "ICU", Count: 23, Color: CategoryPalette[1]},
	}, got.DepartmentActivity)
	assert.Equal(t, []models.ChartSeriesPoint{
		{Label: "Emergency", Count: 2, Color: CategoryPalette[0]},
		{Label: "ICU", Count: 1, Color: CategoryPalette[1]},
	}, got.DepartmentLoad)
}

func TestProcessPatientData_AgeBuckets(t *testing.T) {
	patients := keyed(
		patient("old", 72.0, "Male", "Emergency", daysAgo(1)),
		patient("unknown-age", 0.0, "Female", "Emergency", daysAgo(1)),
	)

	got := newTestPipeline().ProcessPatientData(patients, testNow.AddDate(0, 0, -7), testNow)

	assert.Equal(t, 2, got.TotalPatients)
	require.Len(t, got.AgeDistribution, 1)
	assert.Equal(t, "65+", got.AgeDistribution[0].Label)
	assert.Equal(t, 1.0, got.AgeDistribution[0].Count)
}

func TestProcessPatientData(t *testing.T) {
	src := hospitalSnapshot()
	got := newTestPipeline().ProcessPatientData(src.Patients, testNow.AddDate(0, 0, -7), testNow)

	assert.Equal(t, 3, got.TotalPatients)
	assert.Equal(t, []string{"18-34", "65+"}, labelsOf(got.AgeDistribution))
	assert.Equal(t, []models.ChartSeriesPoint{
		{Label: "Male", Count: 1, Color: DemographicPalette[0]},
		{Label: "Female", Count: 2, Color: DemographicPalette[1]},
	}, got.GenderDistribution)

	require.Len(t, got.DailyPatients, 14)
	assert.Equal(t, 2.0, got.DailyPatients[12].Count)
	assert.Equal(t, 1.0, got.DailyPatients[11].Count)
	require.Len(t, got.MonthlyPatients, 6)
	assert.Equal(t, 3.0, got.MonthlyPatients[5].Count)

	require.Len(t, got.HourlyPattern, 24)
	assert.False(t, got.MockHourly)
	assert.Equal(t, 3.0, got.HourlyPattern[10].Count)
	assert.Equal(t, "10:00", got.PeakHour)
	assert.Equal(t, "Saturday", got.PeakDay)
	assert.Equal(t, "Emergency", got.BusiestDepartment)
	assert.Equal(t, 0.4, got.AveragePerDay)
}

func TestProcessPatientData_Empty(t *testing.T) {
	got := newTestPipeline().ProcessPatientData(map[string]any{}, testNow.AddDate(0, 0, -7), testNow)

	assert.Equal(t, 0, got.TotalPatients)
	assert.Empty(t, got.AgeDistribution)
	assert.Empty(t, got.GenderDistribution)
	assert.Len(t, got.DailyPatients, 14)
	assert.Equal(t, 0.0, Total(got.DailyPatients))

	assert.True(t, got.MockHourly)
	assert.Len(t, got.HourlyPattern, 24)
	assert.Equal(t, NotAvailable, got.PeakHour)
	assert.Equal(t, NotAvailable, got.PeakDay)
	assert.Equal(t, NotAvailable, got.BusiestDepartment)
	assert.Equal(t, 0.0, got.AveragePerDay)
}

func TestProcessBillingData(t *testing.T) {
	src := hospitalSnapshot()
	got := newTestPipeline().ProcessBillingData(src.Billing, src.Patients, testNow.AddDate(0, 0, -7), testNow)

	assert.False(t, got.MockData)
	assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(20000)))
	assert.True(t, got.PendingRevenue.Equal(decimal.NewFromInt(3000)))
	require.Len(t, got.DailyRevenue, 14)
	require.Len(t, got.WeeklyRevenue, 8)
	assert.Equal(t, 12000.0, got.DailyRevenue[13-1].Count)
	assert.Equal(t, 8000.0, got.DailyRevenue[13-3].Count)
	assert.Equal(t, 0.0, got.DailyRevenue[13-2].Count, "pending bills are not revenue")
	assert.Equal(t, 20000.0, Total(got.WeeklyRevenue))
}

func TestProcessBillingData_MockWhenEmpty(t *testing.T) {
	patients := keyed(patient("P1", 40.0, "Male", "Emergency", daysAgo(2)))

	got := newTestPipeline().ProcessBillingData(map[string]any{}, patients, testNow.AddDate(0, 0, -7), testNow)

	assert.True(t, got.MockData)
	require.Len(t, got.DailyRevenue, 14)
	require.Len(t, got.WeeklyRevenue, 8)

	band := DefaultSettings().RateBandFor("Emergency")
	assertWithinBand(t, got.DailyRevenue, band)
	assertWithinBand(t, got.WeeklyRevenue, band)
	assert.Equal(t, got.WeeklyRevenue[6].Count+got.WeeklyRevenue[7].Count, got.TotalRevenue.InexactFloat64())
}

func TestProcessBillingData_MockBucketsStayInBand(t *testing.T) {
	settings := DefaultSettings()
	patients := keyed(
		patient("P1", 30.0, "Male", "Emergency", daysAgo(1)),
		patient("P2", 41.0, "Female", "Emergency", daysAgo(1)),
		patient("P3", 52.0, "Male", "Emergency", daysAgo(1)),
		patient("P4", 63.0, "Female", "Surgery", daysAgo(30)),
	)

	got := newTestPipeline().ProcessBillingData(map[string]any{}, patients, testNow.AddDate(0, 0, -180), testNow)
	require.True(t, got.MockData)

	emergency := settings.RateBandFor("Emergency")
	surgery := settings.RateBandFor("Surgery")
	bandByLabel := map[string]RateBand{
		"03/14": emergency, // P1..P3
		"W11":   emergency, // week of 03/09
		"W7":    surgery,   // week of 02/09, holding P4
	}

	check := func(points []models.ChartSeriesPoint) {
		for _, p := range points {
			band, ok := bandByLabel[p.Label]
			if !ok {
				band = settings.DefaultRateBand
			}
			assert.GreaterOrEqual(t, p.Count, float64(band.Min), p.Label)
			assert.LessOrEqual(t, p.Count, float64(band.Max), p.Label)
		}
	}
	require.Len(t, got.DailyRevenue, 14)
	require.Len(t, got.WeeklyRevenue, 8)
	check(got.DailyRevenue)
	check(got.WeeklyRevenue)

	assert.Equal(t, Total(got.WeeklyRevenue), got.TotalRevenue.InexactFloat64())
}

func TestRun_Dashboard(t *testing.T) {
	d := newTestPipeline().Run(hospitalSnapshot(), ScopeAdmin, "week", testNow)

	assert.Equal(t, ScopeAdmin, d.Scope)
	assert.Equal(t, "week", d.Timeline.Value)
	assert.Equal(t, testNow, d.GeneratedAt)
	assert.True(t, testNow.AddDate(0, 0, -7).Equal(d.WindowStart))
	assert.False(t, d.Fallback)
	assert.False(t, d.IsMockBilling())

	assert.Equal(t, 3, d.TotalMedicines)
	assert.Equal(t, 1, d.TotalSupplies)
	assert.Equal(t, 3, d.TotalPatients)
	assert.Equal(t, 2, d.DepartmentCount)

	// The previous week holds P4 and the 9000 ICU bill, but no usage.
	assert.Equal(t, 200.0, d.PatientGrowth)
	assert.Equal(t, 122.2, d.RevenueGrowth)
	assert.GreaterOrEqual(t, d.UsageGrowth, -5.0)
	assert.LessOrEqual(t, d.UsageGrowth, 15.0)
}

func TestRun_UnknownTimelineUsesFallbackWindow(t *testing.T) {
	d := newTestPipeline().Run(hospitalSnapshot(), ScopeAdmin, "decade", testNow)

	assert.Equal(t, 180, d.Timeline.Days)
	assert.Equal(t, 4, d.TotalPatients)
}

func TestRun_Idempotent(t *testing.T) {
	src := hospitalSnapshot()

	first := New(DefaultSettings(), NewRand(11)).Run(src, ScopeAdmin, "month", testNow)
	second := New(DefaultSettings(), NewRand(11)).Run(src, ScopeAdmin, "month", testNow)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestRun_NilCollections(t *testing.T) {
	d := newTestPipeline().Run(models.SourceSnapshot{}, ScopeAdmin, "week", testNow)

	assert.Equal(t, 0, d.TotalMedicines)
	assert.Equal(t, 0, d.TotalPatients)
	assert.Equal(t, 0, d.DepartmentCount)
	assert.True(t, d.MockData)
	assert.True(t, d.MockHourly)
	assert.Len(t, d.DailyRevenue, 14)
}

func TestFallback(t *testing.T) {
	d := newTestPipeline().Fallback(ScopeAdmin, "month", testNow)

	assert.True(t, d.Fallback)
	assert.True(t, d.MockData)
	assert.True(t, d.MockHourly)
	assert.Equal(t, 25, d.TotalPatients)
	assert.Equal(t, 45, d.TotalMedicines)
	assert.Equal(t, 38, d.TotalSupplies)
	assert.True(t, d.TotalRevenue.Equal(decimal.NewFromInt(2500000)))
	assert.Equal(t, 0.8, d.AveragePerDay)

	assert.NotNil(t, d.MedicineUsage)
	assert.NotNil(t, d.DepartmentActivity)
	assert.Len(t, d.HourlyPattern, 24)
	assert.Len(t, d.DailyRevenue, 14)
	assert.Len(t, d.WeeklyRevenue, 8)
	assert.GreaterOrEqual(t, d.RevenueGrowth, -5.0)
	assert.LessOrEqual(t, d.RevenueGrowth, 15.0)
}

func TestScopeSnapshot(t *testing.T) {
	src := hospitalSnapshot()

	scoped, ok := ScopeSnapshot(src, "emergency")
	require.True(t, ok)

	assert.Equal(t, []string{"Emergency"}, DepartmentNames(scoped))
	assert.Len(t, scoped.Patients, 3)
	assert.Len(t, scoped.Billing, 2, "the department bill and the bill of an Emergency patient")

	d := newTestPipeline().Run(scoped, "Emergency", "week", testNow)
	assert.Equal(t, 2, d.TotalPatients)
	assert.Equal(t, 2, d.TotalMedicines)
	assert.True(t, d.TotalRevenue.Equal(decimal.NewFromInt(20000)))

	_, ok = ScopeSnapshot(src, "Oncology")
	assert.False(t, ok)
}

func TestPresentLabels(t *testing.T) {
	d := models.Dashboard{}
	d.MedicineUsage = []models.ChartSeriesPoint{{Label: "Paracetamol 500mg", Count: 3}}
	d.DailyPatients = []models.ChartSeriesPoint{{Label: "03/15", Count: 1}}

	limit := DefaultSettings().LabelLimit(ParseLabelStyle("BAR"))
	assert.Equal(t, 8, limit)

	shown := PresentLabels(d, limit)
	assert.Equal(t, "Paraceta...", shown.MedicineUsage[0].Label)
	assert.Equal(t, "03/15", shown.DailyPatients[0].Label)
	assert.Equal(t, "Paracetamol 500mg", d.MedicineUsage[0].Label)

	assert.Equal(t, 15, DefaultSettings().LabelLimit(LabelsPie))
	assert.Equal(t, 0, DefaultSettings().LabelLimit(ParseLabelStyle("donut")))
	assert.Equal(t, d, PresentLabels(d, 0))
}
