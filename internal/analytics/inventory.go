package analytics

import (
	"time"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// ProcessMedicineData summarises medicine stock and the medicine usage logged since lowerBound.
func (p *Pipeline) ProcessMedicineData(departments map[string]any, lowerBound time.Time) models.MedicineData {
	stock := NormalizeInventory(departments, models.InventoryMedicines)
	usage := usageOfType(FilterUsage(NormalizeUsage(departments), lowerBound), models.InventoryMedicines)

	return models.MedicineData{
		TotalMedicines:     len(stock),
		MedicineUsage:      Ranked(Aggregate(usage, byItemName, usageQuantity), p.settings.UsageTopN, p.settings.MedicinePalette),
		MedicineCategories: Ranked(Aggregate(stock, byStockCategory, stockQuantity), 0, p.settings.CategoryPalette),
		MedicineBrands:     Ranked(Aggregate(stock, byStockBrand, stockQuantity), 0, p.settings.MedicinePalette),
	}
}

// ProcessSupplyData summarises supply stock and the supply usage logged since lowerBound.
func (p *Pipeline) ProcessSupplyData(departments map[string]any, lowerBound time.Time) models.SupplyData {
	stock := NormalizeInventory(departments, models.InventorySupplies)
	usage := usageOfType(FilterUsage(NormalizeUsage(departments), lowerBound), models.InventorySupplies)

	return models.SupplyData{
		TotalSupplies:    len(stock),
		SupplyUsage:      Ranked(Aggregate(usage, byItemName, usageQuantity), p.settings.UsageTopN, p.settings.SupplyPalette),
		SupplyCategories: Ranked(Aggregate(stock, byStockCategory, stockQuantity), 0, p.settings.SupplyPalette),
		SupplyBrands:     Ranked(Aggregate(stock, byStockBrand, stockQuantity), 0, p.settings.SupplyPalette),
	}
}

func usageOfType(entries []models.UsageEntry, kind models.InventoryType) []models.UsageEntry {
	out := make([]models.UsageEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

func usageTotal(entries []models.UsageEntry) int {
	var total int
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}

func byItemName(e models.UsageEntry) (string, bool) { return e.ItemName, true }

func usageQuantity(e models.UsageEntry) float64 { return float64(e.Quantity) }

func byStockCategory(i models.InventoryItem) (string, bool) { return i.Category, true }

func byStockBrand(i models.InventoryItem) (string, bool) { return i.Brand, true }

func stockQuantity(i models.InventoryItem) float64 { return float64(i.Quantity) }
