package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/danken4445/hospital-management/internal/domain/models"
)

// Granularity controls the bucket size of a time series.
type Granularity int

const (
	GranularityDay Granularity = iota + 1
	GranularityWeek
	GranularityMonth
)

// RangeSpec describes the buckets a series covers. With Buckets > 0 the series holds
// exactly that many trailing buckets ending at the bucket containing End; otherwise it
// holds only the buckets that received data.
type RangeSpec struct {
	Granularity Granularity
	Buckets     int
	End         time.Time
}

// TimeFunc extracts an item's instant.
type TimeFunc[T any] func(T) (time.Time, bool)

// BuildSeries buckets items by calendar period and returns points in ascending date order.
func BuildSeries[T any](items []T, at TimeFunc[T], value ValueFunc[T], spec RangeSpec) []models.ChartSeriesPoint {
	loc := spec.End.Location()
	sums := make(map[int64]float64)

	for _, item := range items {
		t, ok := at(item)
		if !ok {
			continue
		}
		start := bucketStart(t.In(loc), spec.Granularity)
		sums[start.Unix()] += value(item)
	}

	if spec.Buckets <= 0 {
		return sparseSeries(sums, spec.Granularity, loc)
	}

	starts := BucketStarts(spec)
	points := make([]models.ChartSeriesPoint, 0, len(starts))
	for _, start := range starts {
		points = append(points, models.ChartSeriesPoint{
			Label: BucketLabel(start, spec.Granularity),
			Count: sums[start.Unix()],
		})
	}
	return points
}

// BucketStarts lists the start of each bucket in spec, oldest first.
func BucketStarts(spec RangeSpec) []time.Time {
	if spec.Buckets <= 0 {
		return nil
	}
	starts := make([]time.Time, spec.Buckets)
	cur := bucketStart(spec.End, spec.Granularity)
	for i := spec.Buckets - 1; i >= 0; i-- {
		starts[i] = cur
		cur = bucketPrev(cur, spec.Granularity)
	}
	return starts
}

// BucketLabel formats a bucket start as MM/DD, W<iso week> or YYYY-MM.
func BucketLabel(t time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		_, week := t.ISOWeek()
		return fmt.Sprintf("W%d", week)
	case GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format("01/02")
	}
}

func sparseSeries(sums map[int64]float64, g Granularity, loc *time.Location) []models.ChartSeriesPoint {
	keys := make([]int64, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	points := make([]models.ChartSeriesPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, models.ChartSeriesPoint{
			Label: BucketLabel(time.Unix(k, 0).In(loc), g),
			Count: sums[k],
		})
	}
	return points
}

func bucketStart(t time.Time, g Granularity) time.Time {
	loc := t.Location()
	switch g {
	case GranularityWeek:
		// ISO weeks start on Monday.
		daysBack := (int(t.Weekday()) + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-daysBack, 0, 0, 0, 0, loc)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

func bucketPrev(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return t.AddDate(0, 0, -7)
	case GranularityMonth:
		return t.AddDate(0, -1, 0)
	default:
		return t.AddDate(0, 0, -1)
	}
}
