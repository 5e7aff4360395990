package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

const (
	unknownItem     = "Unknown Item"
	unknownMedicine = "Unknown Medicine"
	unknownSupply   = "Unknown Supply"
	defaultCategory = "General"
	defaultBrand    = "Generic"
	unknownGender   = "Unknown"
)

// Child paths under a department record.
const (
	pathLocalMeds     = "localMeds"
	pathLocalSupplies = "localSupplies"
	pathUsageHistory  = "usageHistory"
)

// NormalizeUsage flattens every department's usageHistory into usage entries.
// Departments and entries are visited in key order so repeated calls agree on ordering.
func NormalizeUsage(departments map[string]any) []models.UsageEntry {
	entries := make([]models.UsageEntry, 0)

	for _, deptName := range sortedKeys(departments) {
		dept := asRecord(departments[deptName])
		history := asRecord(lookup(dept, pathUsageHistory))

		for _, id := range sortedKeys(history) {
			raw := asRecord(history[id])
			if raw == nil {
				continue
			}

			kind := normalizeType(stringField(raw, "type"))
			department := stringField(raw, "department")
			if department == "" {
				department = deptName
			}

			entries = append(entries, models.UsageEntry{
				ItemName:   defaultString(stringField(raw, "itemName", "name"), unknownName(kind)),
				Quantity:   nonNegative(intField(raw, "quantity")),
				Timestamp:  timestampField(raw, "timestamp"),
				Department: department,
				Category:   defaultString(stringField(raw, "category"), defaultCategory),
				Brand:      defaultString(stringField(raw, "brand"), defaultBrand),
				Type:       kind,
				PatientID:  stringField(raw, "patientId"),
			})
		}
	}

	return entries
}

// NormalizeInventory flattens the medicine or supply stock of every department.
func NormalizeInventory(departments map[string]any, kind models.InventoryType) []models.InventoryItem {
	path := pathLocalMeds
	if kind == models.InventorySupplies {
		path = pathLocalSupplies
	}

	items := make([]models.InventoryItem, 0)
	for _, deptName := range sortedKeys(departments) {
		stock := asRecord(lookup(asRecord(departments[deptName]), path))

		for _, id := range sortedKeys(stock) {
			raw := asRecord(stock[id])
			if raw == nil {
				continue
			}

			items = append(items, models.InventoryItem{
				ItemName:   defaultString(stringField(raw, "itemName", "name"), unknownName(kind)),
				Brand:      defaultString(stringField(raw, "brand"), defaultBrand),
				Category:   defaultString(stringField(raw, "category"), defaultCategory),
				Quantity:   nonNegative(intField(raw, "quantity")),
				Department: deptName,
				Type:       kind,
			})
		}
	}

	return items
}

// NormalizePatients converts the patient collection into records.
func NormalizePatients(patients map[string]any) []models.PatientRecord {
	records := make([]models.PatientRecord, 0, len(patients))

	for _, id := range sortedKeys(patients) {
		raw := asRecord(patients[id])
		if raw == nil {
			continue
		}

		records = append(records, models.PatientRecord{
			PatientID:  defaultString(stringField(raw, "patientId"), id),
			DateTime:   timestampField(raw, "dateTime", "date"),
			Age:        nonNegative(intField(raw, "age")),
			Gender:     normalizeGender(stringField(raw, "gender")),
			Department: stringField(raw, "department", "roomType"),
			Status:     strings.ToLower(stringField(raw, "status")),
		})
	}

	return records
}

// NormalizeBilling converts the billing collection into records.
func NormalizeBilling(billing map[string]any) []models.BillingRecord {
	records := make([]models.BillingRecord, 0, len(billing))

	for _, id := range sortedKeys(billing) {
		raw := asRecord(billing[id])
		if raw == nil {
			continue
		}

		records = append(records, models.BillingRecord{
			BillingID:  id,
			Amount:     decimalField(raw, "amount", "totalAmount"),
			Date:       timestampField(raw, "date", "dateTime"),
			Status:     defaultString(strings.ToLower(stringField(raw, "status")), models.BillingPending),
			Department: stringField(raw, "department"),
			PatientID:  stringField(raw, "patientId"),
		})
	}

	return records
}

// CoerceInt parses a leading integer the way lenient form inputs are read:
// surrounding whitespace and trailing garbage are ignored, anything else is 0.
func CoerceInt(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return truncFloat(float64(v))
	case float64:
		return truncFloat(v)
	case bool:
		return 0
	case string:
		return parseLeadingInt(v)
	default:
		return parseLeadingInt(fmt.Sprint(v))
	}
}

func truncFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}

func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asRecord(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case []any:
		// Realtime databases return sequential integer keys as arrays.
		out := make(map[string]any, len(v))
		for i, item := range v {
			if item != nil {
				out[strconv.Itoa(i)] = item
			}
		}
		return out
	default:
		return nil
	}
}

// lookup finds a field by exact name first, then case-insensitively.
func lookup(raw map[string]any, names ...string) any {
	if raw == nil {
		return nil
	}
	for _, name := range names {
		if v, ok := raw[name]; ok && v != nil {
			return v
		}
	}
	for _, key := range sortedKeys(raw) {
		for _, name := range names {
			if strings.EqualFold(key, name) && raw[key] != nil {
				return raw[key]
			}
		}
	}
	return nil
}

func stringField(raw map[string]any, names ...string) string {
	switch v := lookup(raw, names...).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func intField(raw map[string]any, names ...string) int {
	return CoerceInt(lookup(raw, names...))
}

func decimalField(raw map[string]any, names ...string) decimal.Decimal {
	switch v := lookup(raw, names...).(type) {
	case nil:
		return decimal.Zero
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", ""))
		if err != nil {
			return decimal.NewFromInt(int64(parseLeadingInt(v)))
		}
		return d
	default:
		return decimal.NewFromInt(int64(CoerceInt(v)))
	}
}

// timestampField renders any supported timestamp representation as an ISO-8601 string.
// Numbers are read as epoch milliseconds.
func timestampField(raw map[string]any, names ...string) string {
	switch v := lookup(raw, names...).(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case float64:
		return time.UnixMilli(int64(v)).UTC().Format(time.RFC3339Nano)
	case int64:
		return time.UnixMilli(v).UTC().Format(time.RFC3339Nano)
	case int:
		return time.UnixMilli(int64(v)).UTC().Format(time.RFC3339Nano)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func normalizeType(value string) models.InventoryType {
	switch strings.ToLower(value) {
	case "medicine", "medicines", "med", "meds":
		return models.InventoryMedicines
	case "supply", "supplies":
		return models.InventorySupplies
	default:
		return models.InventoryType(strings.ToLower(value))
	}
}

func normalizeGender(value string) string {
	switch strings.ToLower(value) {
	case "":
		return unknownGender
	case "m", "male":
		return "Male"
	case "f", "female":
		return "Female"
	default:
		return cases.Title(language.English).String(value)
	}
}

func unknownName(kind models.InventoryType) string {
	switch kind {
	case models.InventoryMedicines:
		return unknownMedicine
	case models.InventorySupplies:
		return unknownSupply
	default:
		return unknownItem
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
