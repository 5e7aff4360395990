package analytics

import (
	"slices"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

const ellipsis = "..."

// Age bucket labels in their natural order.
var AgeBuckets = []string{"0-17", "18-34", "35-49", "50-64", "65+"}

// Groups accumulates values per key and remembers the order keys were first seen.
type Groups struct {
	index  map[string]int
	labels []string
	values []float64
}

// NewGroups returns an empty insertion-ordered group set.
func NewGroups() *Groups {
	return &Groups{index: make(map[string]int)}
}

// Add adds value to key, creating the group on first sight.
func (g *Groups) Add(key string, value float64) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.labels)
		g.index[key] = i
		g.labels = append(g.labels, key)
		g.values = append(g.values, 0)
	}
	g.values[i] += value
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.labels)
}

// Value returns the accumulated value of key.
func (g *Groups) Value(key string) float64 {
	if i, ok := g.index[key]; ok {
		return g.values[i]
	}
	return 0
}

// Points returns the groups in first-seen order.
func (g *Groups) Points() []models.ChartSeriesPoint {
	points := make([]models.ChartSeriesPoint, len(g.labels))
	for i, label := range g.labels {
		points[i] = models.ChartSeriesPoint{Label: label, Count: g.values[i]}
	}
	return points
}

// OrderedBy returns the groups whose key appears in order, following that order.
func (g *Groups) OrderedBy(order []string) []models.ChartSeriesPoint {
	points := make([]models.ChartSeriesPoint, 0, len(order))
	for _, label := range order {
		if i, ok := g.index[label]; ok {
			points = append(points, models.ChartSeriesPoint{Label: label, Count: g.values[i]})
		}
	}
	return points
}

// ArgMax returns the key with the largest value; the earliest key wins a tie.
func (g *Groups) ArgMax() (string, bool) {
	if len(g.labels) == 0 {
		return "", false
	}
	best := 0
	for i := 1; i < len(g.values); i++ {
		if g.values[i] > g.values[best] {
			best = i
		}
	}
	return g.labels[best], true
}

// KeyFunc extracts a grouping key. Returning false leaves the item out of the aggregation.
type KeyFunc[T any] func(T) (string, bool)

// ValueFunc extracts the amount an item contributes to its group.
type ValueFunc[T any] func(T) float64

// GroupBy folds items into groups.
func GroupBy[T any](items []T, key KeyFunc[T], value ValueFunc[T]) *Groups {
	groups := NewGroups()
	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		groups.Add(k, value(item))
	}
	return groups
}

// Aggregate groups items and returns one point per key in first-seen order.
func Aggregate[T any](items []T, key KeyFunc[T], value ValueFunc[T]) []models.ChartSeriesPoint {
	return GroupBy(items, key, value).Points()
}

// CountOf counts members.
func CountOf[T any](T) float64 {
	return 1
}

// RankDescending sorts by count, highest first, keeping first-seen order between equal counts.
func RankDescending(points []models.ChartSeriesPoint) []models.ChartSeriesPoint {
	slices.SortStableFunc(points, func(a, b models.ChartSeriesPoint) int {
		switch {
		case a.Count > b.Count:
			return -1
		case a.Count < b.Count:
			return 1
		default:
			return 0
		}
	})
	return points
}

// TopN keeps the first n points. A non-positive n keeps everything.
func TopN(points []models.ChartSeriesPoint, n int) []models.ChartSeriesPoint {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[:n]
}

// Ranked sorts descending, truncates to n and colors by rank.
func Ranked(points []models.ChartSeriesPoint, n int, palette Palette) []models.ChartSeriesPoint {
	return Colorize(TopN(RankDescending(points), n), palette)
}

// AgeBucket assigns an age to its bin. Ages at or below zero have no bin.
func AgeBucket(age int) (string, bool) {
	switch {
	case age <= 0:
		return "", false
	case age < 18:
		return AgeBuckets[0], true
	case age < 35:
		return AgeBuckets[1], true
	case age < 50:
		return AgeBuckets[2], true
	case age < 65:
		return AgeBuckets[3], true
	default:
		return AgeBuckets[4], true
	}
}

// TruncateLabel shortens label to limit runes plus an ellipsis. A non-positive limit disables it.
func TruncateLabel(label string, limit int) string {
	if limit <= 0 {
		return label
	}
	runes := []rune(label)
	if len(runes) <= limit {
		return label
	}
	return string(runes[:limit]) + ellipsis
}

// TruncateLabels returns a copy of points with display-length labels.
// It is applied after grouping so distinct items never merge.
func TruncateLabels(points []models.ChartSeriesPoint, limit int) []models.ChartSeriesPoint {
	out := make([]models.ChartSeriesPoint, len(points))
	for i, p := range points {
		p.Label = TruncateLabel(p.Label, limit)
		out[i] = p
	}
	return out
}

// Total sums the counts of a series.
func Total(points []models.ChartSeriesPoint) float64 {
	var sum float64
	for _, p := range points {
		sum += p.Count
	}
	return sum
}
