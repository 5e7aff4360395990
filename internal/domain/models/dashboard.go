package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MedicineData is the medicine slice of a dashboard.
type MedicineData struct {
	TotalMedicines     int                `json:"totalMedicines"`
	MedicineUsage      []ChartSeriesPoint `json:"medicineUsage"`
	MedicineCategories []ChartSeriesPoint `json:"medicineCategories"`
	MedicineBrands     []ChartSeriesPoint `json:"medicineBrands"`
}

// SupplyData is the supply slice of a dashboard.
type SupplyData struct {
	TotalSupplies    int                `json:"totalSupplies"`
	SupplyUsage      []ChartSeriesPoint `json:"supplyUsage"`
	SupplyCategories []ChartSeriesPoint `json:"supplyCategories"`
	SupplyBrands     []ChartSeriesPoint `json:"supplyBrands"`
}

// DepartmentData describes activity across departments.
type DepartmentData struct {
	DepartmentCount    int                `json:"departmentCount"`
	DepartmentActivity []ChartSeriesPoint `json:"departmentActivity"`
	DepartmentLoad     []ChartSeriesPoint `json:"departmentLoad"`
}

// PatientData describes patient traffic and demographics.
type PatientData struct {
	TotalPatients      int                `json:"totalPatients"`
	AgeDistribution    []ChartSeriesPoint `json:"ageDistribution"`
	GenderDistribution []ChartSeriesPoint `json:"genderDistribution"`
	DailyPatients      []ChartSeriesPoint `json:"dailyPatients"`
	MonthlyPatients    []ChartSeriesPoint `json:"monthlyPatients"`
	HourlyPattern      []ChartSeriesPoint `json:"hourlyPattern"`
	MockHourly         bool               `json:"mockHourly"`
	PeakHour           string             `json:"peakHour"`
	PeakDay            string             `json:"peakDay"`
	BusiestDepartment  string             `json:"busiestDepartment"`
	AveragePerDay      float64            `json:"averagePerDay"`
}

// BillingData describes revenue. MockData marks synthesized figures.
type BillingData struct {
	TotalRevenue   decimal.Decimal    `json:"totalRevenue"`
	PendingRevenue decimal.Decimal    `json:"pendingRevenue"`
	WeeklyRevenue  []ChartSeriesPoint `json:"weeklyRevenue"`
	DailyRevenue   []ChartSeriesPoint `json:"dailyRevenue"`
	MockData       bool               `json:"mockData"`
}

// PeriodTotals are the headline counts compared between two windows.
type PeriodTotals struct {
	TotalPatients int
	TotalUsage    int
	TotalRevenue  decimal.Decimal
}

// GrowthMetrics holds percentage change against the previous window.
type GrowthMetrics struct {
	PatientGrowth float64 `json:"patientGrowth"`
	UsageGrowth   float64 `json:"usageGrowth"`
	RevenueGrowth float64 `json:"revenueGrowth"`
}

// Dashboard is the complete chart-ready result for one scope and timeline.
type Dashboard struct {
	Scope       string         `json:"scope"`
	Timeline    TimelineOption `json:"timeline"`
	GeneratedAt time.Time      `json:"generatedAt"`
	WindowStart time.Time      `json:"windowStart"`
	Fallback    bool           `json:"fallback"`

	MedicineData
	SupplyData
	DepartmentData
	PatientData
	BillingData
	GrowthMetrics
}

// IsMockBilling reports whether revenue figures were synthesized.
func (d Dashboard) IsMockBilling() bool {
	return d.MockData
}
