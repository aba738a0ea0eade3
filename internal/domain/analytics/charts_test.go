package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestCountByMonthEmptyInput(t *testing.T) {
	series := CountByMonth(nil, 6, date(2024, time.June, 15))

	assert.Len(t, series, 6)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, series)
}

func TestSumByMonthEmptyInput(t *testing.T) {
	series := SumByMonth(nil, 6, date(2024, time.June, 15))

	assert.Len(t, series, 6)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, series)
}

func TestCountByMonthCurrentMonthLandsInLastSlot(t *testing.T) {
	ref := date(2024, time.June, 15)
	series := CountByMonth([]time.Time{date(2024, time.June, 1)}, 12, ref)

	assert.Len(t, series, 12)
	assert.Equal(t, 1, series[11])
	for i := 0; i < 11; i++ {
		assert.Zero(t, series[i], "slot %d should be empty", i)
	}
}

func TestCountByMonthPlacement(t *testing.T) {
	ref := date(2024, time.June, 15)
	times := []time.Time{
		date(2024, time.June, 2),  // current month -> slot 5
		date(2024, time.May, 30),  // 1 month ago   -> slot 4
		date(2024, time.May, 1),   // 1 month ago   -> slot 4
		date(2024, time.January, 9), // 5 months ago -> slot 0
	}

	series := CountByMonth(times, 6, ref)
	assert.Equal(t, []int{1, 0, 0, 0, 2, 1}, series)
}

func TestCountByMonthWrapsYearBoundary(t *testing.T) {
	// Reference in February: December records are two months back even
	// though the month number is larger.
	ref := date(2024, time.February, 10)
	series := CountByMonth([]time.Time{date(2023, time.December, 25)}, 6, ref)

	assert.Equal(t, []int{0, 0, 0, 1, 0, 0}, series)
}

func TestCountByMonthIgnoresRecordsOutsideWindow(t *testing.T) {
	ref := date(2024, time.June, 15)
	series := CountByMonth([]time.Time{date(2023, time.November, 1)}, 6, ref)

	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, series)
}

func TestCountByMonthOrderIndependent(t *testing.T) {
	ref := date(2024, time.June, 15)
	forward := []time.Time{
		date(2024, time.June, 1),
		date(2024, time.April, 3),
		date(2024, time.February, 7),
	}
	backward := []time.Time{forward[2], forward[1], forward[0]}

	assert.Equal(t, CountByMonth(forward, 6, ref), CountByMonth(backward, 6, ref))
}

func TestSumByMonthAccumulatesValues(t *testing.T) {
	ref := date(2024, time.June, 15)
	points := []MetricPoint{
		{At: date(2024, time.June, 1), Value: 150},
		{At: date(2024, time.June, 20), Value: 50},
		{At: date(2024, time.March, 5), Value: 75},
	}

	series := SumByMonth(points, 6, ref)
	assert.Equal(t, []float64{0, 0, 75, 0, 0, 200}, series)
}

func TestSumByMonthSingleRecordFullValueInLastSlot(t *testing.T) {
	ref := date(2024, time.September, 9)
	points := []MetricPoint{{At: date(2024, time.September, 1), Value: 999.5}}

	series := SumByMonth(points, 12, ref)
	assert.Len(t, series, 12)
	assert.Equal(t, 999.5, series[11])
	for i := 0; i < 11; i++ {
		assert.Zero(t, series[i])
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     int
	}{
		{"zero previous is a full-value swing", 6, 0, 600},
		{"zero previous zero current", 0, 0, 0},
		{"doubling", 200, 100, 100},
		{"halving", 50, 100, -50},
		{"rounds to nearest point", 101, 300, -66},
		{"unchanged", 42, 42, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentChange(tt.current, tt.previous))
		})
	}
}

func TestShares(t *testing.T) {
	categories := []string{"laptop", "camera", "shoes"}
	counts := map[string]int{"laptop": 5, "camera": 3, "shoes": 2}

	shares := Shares(categories, counts, 10)

	assert.Equal(t, []CategoryShare{
		{Category: "laptop", Percent: 50},
		{Category: "camera", Percent: 30},
		{Category: "shoes", Percent: 20},
	}, shares)
}

func TestSharesZeroTotal(t *testing.T) {
	shares := Shares([]string{"laptop", "camera"}, map[string]int{}, 0)

	for _, s := range shares {
		assert.Zero(t, s.Percent)
	}
}

func TestSharesPreservesCategoryOrder(t *testing.T) {
	categories := []string{"z", "a", "m"}
	shares := Shares(categories, map[string]int{"z": 1, "a": 1, "m": 1}, 3)

	assert.Equal(t, "z", shares[0].Category)
	assert.Equal(t, "a", shares[1].Category)
	assert.Equal(t, "m", shares[2].Category)
}

func TestSumTotals(t *testing.T) {
	points := []MetricPoint{{Value: 10}, {Value: 2.5}, {Value: 7.5}}
	assert.Equal(t, 20.0, SumTotals(points))
	assert.Zero(t, SumTotals(nil))
}
