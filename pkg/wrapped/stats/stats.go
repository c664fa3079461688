// Package stats derives aggregate metrics from the per-day engagement
// series. The series is the finest-grained data in the export, so values
// computed here supersede the same-named aggregates carried elsewhere.
package stats

import (
	"sort"

	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
)

// SumEngagements returns the arithmetic total of per-day engagements.
func SumEngagements(series []models.DailyEngagement) float64 {
	var total float64
	for _, p := range series {
		total += p.Engagements
	}
	return total
}

// MedianImpressions returns the median of the non-negative per-day
// impression values: the middle element for an odd count, the mean of the
// two middle elements for an even count, and 0 for an empty series.
func MedianImpressions(series []models.DailyEngagement) float64 {
	vals := make([]float64, 0, len(series))
	for _, p := range series {
		if p.Impressions >= 0 {
			vals = append(vals, p.Impressions)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}
