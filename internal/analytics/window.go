package analytics

import (
	"strings"
	"time"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
}

// ParseTimestamp reads an ISO-8601 style timestamp. Values without a zone are read as UTC.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveTimeline finds the option whose value matches, or a fallback window of fallbackDays.
func ResolveTimeline(options []models.TimelineOption, value string, fallbackDays int) models.TimelineOption {
	for _, opt := range options {
		if opt.Value == value && opt.Days > 0 {
			return opt
		}
	}
	for _, opt := range options {
		if opt.Days == fallbackDays {
			return opt
		}
	}
	return models.TimelineOption{Value: "default", Label: "Default", Days: fallbackDays}
}

// LowerBound subtracts the option's days from now in civil days.
func LowerBound(now time.Time, option models.TimelineOption) time.Time {
	return now.AddDate(0, 0, -option.Days)
}

// Window is a time range with an inclusive start and an exclusive end. A zero end is unbounded.
type Window struct {
	From time.Time
	To   time.Time
}

// Since returns the window that starts at from and has no end.
func Since(from time.Time) Window {
	return Window{From: from}
}

// Previous returns the window of the same civil length that ends where w starts.
func (w Window) Previous(days int) Window {
	return Window{From: w.From.AddDate(0, 0, -days), To: w.From}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !t.Before(w.To) {
		return false
	}
	return true
}

// FilterUsage keeps the entries whose timestamp is at or after lowerBound.
func FilterUsage(entries []models.UsageEntry, lowerBound time.Time) []models.UsageEntry {
	return filterWindow(entries, Since(lowerBound), func(e models.UsageEntry) string { return e.Timestamp })
}

// FilterPatients keeps the patients whose dateTime is at or after lowerBound.
func FilterPatients(patients []models.PatientRecord, lowerBound time.Time) []models.PatientRecord {
	return filterWindow(patients, Since(lowerBound), func(p models.PatientRecord) string { return p.DateTime })
}

// FilterBilling keeps the bills dated at or after lowerBound.
func FilterBilling(bills []models.BillingRecord, lowerBound time.Time) []models.BillingRecord {
	return filterWindow(bills, Since(lowerBound), func(b models.BillingRecord) string { return b.Date })
}

// filterWindow drops items whose timestamp is missing, unparseable or outside w.
func filterWindow[T any](items []T, w Window, timestamp func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		t, ok := ParseTimestamp(timestamp(item))
		if !ok || !w.Contains(t) {
			continue
		}
		out = append(out, item)
	}
	return out
}
