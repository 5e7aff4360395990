package analytics

import "github.com/danken4445/hospital-management/internal/domain/models"

// Palette is a fixed ordered list of colors indexed cyclically.
type Palette []string

var (
	MedicinePalette = Palette{
		"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
		"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
	}
	SupplyPalette = Palette{
		"#0EA5E9", "#22C55E", "#EAB308", "#F43F5E", "#A855F7",
		"#14B8A6", "#D946EF", "#65A30D", "#FB923C", "#3B82F6",
	}
	CategoryPalette = Palette{
		"#1D4ED8", "#15803D", "#B45309", "#B91C1C", "#6D28D9",
		"#0E7490", "#BE185D", "#4D7C0F",
	}
	DemographicPalette = Palette{
		"#2563EB", "#DB2777", "#059669", "#D97706", "#7C3AED",
	}
)

// ColorFor returns the color at index, wrapping around the palette.
func (p Palette) ColorFor(index int) string {
	if len(p) == 0 {
		return ""
	}
	if index < 0 {
		index = -index
	}
	return p[index%len(p)]
}

// Colorize assigns every point the palette color of its position.
func Colorize(points []models.ChartSeriesPoint, palette Palette) []models.ChartSeriesPoint {
	for i := range points {
		points[i].Color = palette.ColorFor(i)
	}
	return points
}
