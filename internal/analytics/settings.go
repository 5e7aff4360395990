// Package analytics turns raw store collections into chart-ready dashboard series.
//
// Every function here is a pure transformation of its inputs. Wall-clock time and
// randomness are passed in explicitly so a dashboard can be rebuilt exactly in tests.
package analytics

import (
	"strings"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// RateBand bounds a synthesized billing amount, inclusive on both ends.
type RateBand struct {
	Min int64 `toml:"min"`
	Max int64 `toml:"max"`
}

// FallbackSummary holds the illustrative headline numbers shown when the store is unreachable.
type FallbackSummary struct {
	Patients  int   `toml:"patients"`
	Medicines int   `toml:"medicines"`
	Supplies  int   `toml:"supplies"`
	Revenue   int64 `toml:"revenue"`
}

// Settings are the tunable constants of the pipeline.
type Settings struct {
	Timelines       []models.TimelineOption `toml:"timelines"`
	FallbackDays    int                     `toml:"fallback_days"`
	UsageTopN       int                     `toml:"usage_top_n"`
	PieLabelLimit   int                     `toml:"pie_label_limit"`
	BarLabelLimit   int                     `toml:"bar_label_limit"`
	DailyBuckets    int                     `toml:"daily_buckets"`
	WeeklyBuckets   int                     `toml:"weekly_buckets"`
	MonthlyBuckets  int                     `toml:"monthly_buckets"`
	GrowthMin       float64                 `toml:"growth_placeholder_min"`
	GrowthMax       float64                 `toml:"growth_placeholder_max"`
	HourlyMockMin   int64                   `toml:"hourly_mock_min"`
	HourlyMockMax   int64                   `toml:"hourly_mock_max"`
	RateBands       map[string]RateBand     `toml:"rate_bands"`
	DefaultRateBand RateBand                `toml:"default_rate_band"`
	Fallback        FallbackSummary         `toml:"fallback"`

	MedicinePalette    []string `toml:"medicine_palette"`
	SupplyPalette      []string `toml:"supply_palette"`
	CategoryPalette    []string `toml:"category_palette"`
	DemographicPalette []string `toml:"demographic_palette"`
}

// DefaultTimelines are the windows offered when no settings file overrides them.
var DefaultTimelines = []models.TimelineOption{
	{Value: "week", Label: "Last 7 Days", Days: 7},
	{Value: "month", Label: "Last 30 Days", Days: 30},
	{Value: "quarter", Label: "Last 90 Days", Days: 90},
	{Value: "halfyear", Label: "Last 6 Months", Days: 180},
	{Value: "year", Label: "Last 12 Months", Days: 365},
}

// DefaultRateBands are the per-department billing bands used for synthesized revenue.
var DefaultRateBands = map[string]RateBand{
	"Emergency":   {Min: 5000, Max: 25000},
	"Surgery":     {Min: 15000, Max: 75000},
	"ICU":         {Min: 10000, Max: 50000},
	"Cardiology":  {Min: 8000, Max: 40000},
	"Neurology":   {Min: 12000, Max: 60000},
	"Pediatrics":  {Min: 3000, Max: 15000},
	"Orthopedics": {Min: 7000, Max: 35000},
	"Radiology":   {Min: 2000, Max: 10000},
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	bands := make(map[string]RateBand, len(DefaultRateBands))
	for name, band := range DefaultRateBands {
		bands[name] = band
	}

	return Settings{
		Timelines:       append([]models.TimelineOption(nil), DefaultTimelines...),
		FallbackDays:    180,
		UsageTopN:       10,
		PieLabelLimit:   15,
		BarLabelLimit:   8,
		DailyBuckets:    14,
		WeeklyBuckets:   8,
		MonthlyBuckets:  6,
		GrowthMin:       -5,
		GrowthMax:       15,
		HourlyMockMin:   1,
		HourlyMockMax:   10,
		RateBands:       bands,
		DefaultRateBand: RateBand{Min: 3000, Max: 15000},
		Fallback: FallbackSummary{
			Patients:  25,
			Medicines: 45,
			Supplies:  38,
			Revenue:   2500000,
		},
		MedicinePalette:    append([]string(nil), MedicinePalette...),
		SupplyPalette:      append([]string(nil), SupplyPalette...),
		CategoryPalette:    append([]string(nil), CategoryPalette...),
		DemographicPalette: append([]string(nil), DemographicPalette...),
	}
}

// WithDefaults fills every zero-valued field from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()

	if len(s.Timelines) == 0 {
		s.Timelines = d.Timelines
	}
	if s.FallbackDays <= 0 {
		s.FallbackDays = d.FallbackDays
	}
	if s.UsageTopN <= 0 {
		s.UsageTopN = d.UsageTopN
	}
	if s.PieLabelLimit <= 0 {
		s.PieLabelLimit = d.PieLabelLimit
	}
	if s.BarLabelLimit <= 0 {
		s.BarLabelLimit = d.BarLabelLimit
	}
	if s.DailyBuckets <= 0 {
		s.DailyBuckets = d.DailyBuckets
	}
	if s.WeeklyBuckets <= 0 {
		s.WeeklyBuckets = d.WeeklyBuckets
	}
	if s.MonthlyBuckets <= 0 {
		s.MonthlyBuckets = d.MonthlyBuckets
	}
	if s.GrowthMin == 0 && s.GrowthMax == 0 {
		s.GrowthMin, s.GrowthMax = d.GrowthMin, d.GrowthMax
	}
	if s.HourlyMockMax <= 0 {
		s.HourlyMockMin, s.HourlyMockMax = d.HourlyMockMin, d.HourlyMockMax
	}
	if len(s.RateBands) == 0 {
		s.RateBands = d.RateBands
	}
	if s.DefaultRateBand.Max <= 0 {
		s.DefaultRateBand = d.DefaultRateBand
	}
	if s.Fallback == (FallbackSummary{}) {
		s.Fallback = d.Fallback
	}
	if len(s.MedicinePalette) == 0 {
		s.MedicinePalette = d.MedicinePalette
	}
	if len(s.SupplyPalette) == 0 {
		s.SupplyPalette = d.SupplyPalette
	}
	if len(s.CategoryPalette) == 0 {
		s.CategoryPalette = d.CategoryPalette
	}
	if len(s.DemographicPalette) == 0 {
		s.DemographicPalette = d.DemographicPalette
	}

	return s
}

// RateBandFor returns the billing band of a department, matched case-insensitively.
func (s Settings) RateBandFor(department string) RateBand {
	if band, ok := s.RateBands[department]; ok {
		return band
	}
	for name, band := range s.RateBands {
		if strings.EqualFold(name, strings.TrimSpace(department)) {
			return band
		}
	}
	return s.DefaultRateBand
}
