package analytics

import (
	"strings"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// LabelStyle selects how chart labels are shortened for display.
type LabelStyle string

const (
	LabelsFull LabelStyle = ""
	LabelsPie  LabelStyle = "pie"
	LabelsBar  LabelStyle = "bar"
)

// ParseLabelStyle maps a query value to a style. Unknown values keep full labels.
func ParseLabelStyle(value string) LabelStyle {
	switch LabelStyle(strings.ToLower(strings.TrimSpace(value))) {
	case LabelsPie:
		return LabelsPie
	case LabelsBar:
		return LabelsBar
	default:
		return LabelsFull
	}
}

// LabelLimit is the rune limit of a style under s.
func (s Settings) LabelLimit(style LabelStyle) int {
	switch style {
	case LabelsPie:
		return s.PieLabelLimit
	case LabelsBar:
		return s.BarLabelLimit
	default:
		return 0
	}
}

// PresentLabels shortens the labels of every categorical series of d.
// Time-series labels are already short and are left alone.
func PresentLabels(d models.Dashboard, limit int) models.Dashboard {
	if limit <= 0 {
		return d
	}
	d.MedicineUsage = TruncateLabels(d.MedicineUsage, limit)
	d.MedicineCategories = TruncateLabels(d.MedicineCategories, limit)
	d.MedicineBrands = TruncateLabels(d.MedicineBrands, limit)
	d.SupplyUsage = TruncateLabels(d.SupplyUsage, limit)
	d.SupplyCategories = TruncateLabels(d.SupplyCategories, limit)
	d.SupplyBrands = TruncateLabels(d.SupplyBrands, limit)
	d.DepartmentActivity = TruncateLabels(d.DepartmentActivity, limit)
	d.DepartmentLoad = TruncateLabels(d.DepartmentLoad, limit)
	return d
}
