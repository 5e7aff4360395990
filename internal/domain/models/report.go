package models

import "time"

// DashboardSnapshot is the archived summary of a dashboard stored in MongoDB.
type DashboardSnapshot struct {
	ID                string    `bson:"_id" json:"id"`
	Scope             string    `bson:"scope" json:"scope"`
	Timeline          string    `bson:"timeline" json:"timeline"`
	GeneratedAt       time.Time `bson:"generated_at" json:"generated_at"`
	TotalPatients     int       `bson:"total_patients" json:"total_patients"`
	TotalMedicines    int       `bson:"total_medicines" json:"total_medicines"`
	TotalSupplies     int       `bson:"total_supplies" json:"total_supplies"`
	DepartmentCount   int       `bson:"department_count" json:"department_count"`
	TotalRevenue      string    `bson:"total_revenue" json:"total_revenue"`
	PatientGrowth     float64   `bson:"patient_growth" json:"patient_growth"`
	UsageGrowth       float64   `bson:"usage_growth" json:"usage_growth"`
	RevenueGrowth     float64   `bson:"revenue_growth" json:"revenue_growth"`
	BusiestDepartment string    `bson:"busiest_department" json:"busiest_department"`
	MockData          bool      `bson:"mock_data" json:"mock_data"`
	Fallback          bool      `bson:"fallback" json:"fallback"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}

// NewDashboardSnapshot flattens a dashboard into its archived form.
func NewDashboardSnapshot(id string, d Dashboard, createdAt time.Time) DashboardSnapshot {
	return DashboardSnapshot{
		ID:                id,
		Scope:             d.Scope,
		Timeline:          d.Timeline.Value,
		GeneratedAt:       d.GeneratedAt,
		TotalPatients:     d.TotalPatients,
		TotalMedicines:    d.TotalMedicines,
		TotalSupplies:     d.TotalSupplies,
		DepartmentCount:   d.DepartmentCount,
		TotalRevenue:      d.TotalRevenue.StringFixed(2),
		PatientGrowth:     d.PatientGrowth,
		UsageGrowth:       d.UsageGrowth,
		RevenueGrowth:     d.RevenueGrowth,
		BusiestDepartment: d.BusiestDepartment,
		MockData:          d.MockData,
		Fallback:          d.Fallback,
		CreatedAt:         createdAt,
	}
}
