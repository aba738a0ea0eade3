// Package analytics provides the pure aggregation algorithms behind the
// admin dashboard: calendar-month bucket series, percentage deltas and
// category share breakdowns. Everything here is a deterministic fold over
// its inputs; persistence and caching live elsewhere.
package analytics

import (
	"math"
	"time"
)

// MetricPoint pairs a record's creation time with a numeric contribution.
type MetricPoint struct {
	At    time.Time
	Value float64
}

// monthsAgo returns how many calendar months before ref the time at falls,
// on a 12-month wheel. Only the month component matters; the +12 mod 12
// keeps the wrap across a year boundary positive.
func monthsAgo(ref, at time.Time) int {
	return (int(ref.Month()) - int(at.Month()) + 12) % 12
}

// CountByMonth buckets timestamps into a fixed-length monthly series.
// Index window-1 is the month of ref, index 0 is window-1 months earlier.
// Timestamps older than the window are ignored; empty months stay zero.
// The result length is always exactly window.
func CountByMonth(times []time.Time, window int, ref time.Time) []int {
	series := make([]int, window)
	for _, at := range times {
		ago := monthsAgo(ref, at)
		if ago < window {
			series[window-ago-1]++
		}
	}
	return series
}

// SumByMonth buckets metric values into a fixed-length monthly series,
// accumulating each point's value into its month slot. Same window
// semantics as CountByMonth.
func SumByMonth(points []MetricPoint, window int, ref time.Time) []float64 {
	series := make([]float64, window)
	for _, p := range points {
		ago := monthsAgo(ref, p.At)
		if ago < window {
			series[window-ago-1] += p.Value
		}
	}
	return series
}

// PercentChange returns the whole-point percentage change from previous to
// current. A zero previous is not an error: the result is current*100,
// treating growth from nothing as a full-value swing.
func PercentChange(current, previous float64) int {
	if previous == 0 {
		return int(math.Round(current * 100))
	}
	return int(math.Round((current - previous) / previous * 100))
}

// CategoryShare is one category's portion of the catalog.
type CategoryShare struct {
	Category string `json:"category"`
	Percent  int    `json:"percent"`
}

// Shares expresses per-category product counts as whole percentages of the
// total catalog, preserving the given category order. A zero total yields
// zero shares rather than a division fault.
func Shares(categories []string, counts map[string]int, total int) []CategoryShare {
	shares := make([]CategoryShare, 0, len(categories))
	for _, category := range categories {
		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(counts[category]) / float64(total) * 100))
		}
		shares = append(shares, CategoryShare{Category: category, Percent: percent})
	}
	return shares
}

// SumTotals folds order totals into a single revenue figure.
func SumTotals(points []MetricPoint) float64 {
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return total
}
