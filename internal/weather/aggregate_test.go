package weather

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sevenDayForecast builds 7 days with 8 three-hour steps each, starting
// at midnight UTC. Visibility encodes the step hour so tests can tell
// which entry a summary came from.
func sevenDayForecast(start time.Time) []RawConditions {
	var entries []RawConditions
	for day := 0; day < 7; day++ {
		for step := 0; step < 8; step++ {
			ts := start.AddDate(0, 0, day).Add(time.Duration(step*3) * time.Hour)
			entries = append(entries, RawConditions{
				Timestamp:   ip(ts.Unix()),
				VisibilityM: fp(float64(ts.Hour()) * metersPerStatuteMile),
			})
		}
	}
	return entries
}

func TestDailySummaries_selectsAfternoonWindow(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	readings := DailySummaries(sevenDayForecast(start), 3)

	require.Len(t, readings, 3)
	for i, reading := range readings {
		wantDate := start.AddDate(0, 0, i).Format(time.DateOnly)
		assert.Equal(t, wantDate, reading.ObservedAt.Format(time.DateOnly))
		// First step in [15,21] UTC is the 15:00 entry
		assert.Equal(t, "15.0 sm", reading.Visibility, "day %d", i)
	}
}

func TestDailySummaries_ascendingDateOrder(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	readings := DailySummaries(sevenDayForecast(start), 7)

	require.Len(t, readings, 7)
	for i := 1; i < len(readings); i++ {
		assert.True(t, readings[i-1].ObservedAt.Before(readings[i].ObservedAt))
	}
}

func TestDailySummaries_midpointFallback(t *testing.T) {
	// All entries in the morning; no afternoon window match, so the
	// floor-midpoint entry (index 2 of 4) is the representative.
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	var entries []RawConditions
	for step := 0; step < 4; step++ {
		ts := day.Add(time.Duration(step*3) * time.Hour)
		entries = append(entries, RawConditions{
			Timestamp:   ip(ts.Unix()),
			VisibilityM: fp(float64(step+1) * metersPerStatuteMile),
		})
	}

	readings := DailySummaries(entries, 1)
	require.Len(t, readings, 1)
	assert.Equal(t, "3.0 sm", readings[0].Visibility)
}

func TestDailySummaries_clampsDayCount(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	entries := sevenDayForecast(start)

	assert.Len(t, DailySummaries(entries, 0), 1)
	assert.Len(t, DailySummaries(entries, -5), 1)
	assert.Len(t, DailySummaries(entries, 12), 7)
}

func TestDailySummaries_stopsAtRequestedDays(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	readings := DailySummaries(sevenDayForecast(start), 2)
	require.Len(t, readings, 2)
}

func TestDailySummaries_groupsByUTCDate(t *testing.T) {
	// Two entries either side of a UTC midnight land on different days
	var entries []RawConditions
	for i, hour := range []int{23, 1} {
		ts := time.Date(2026, 9, 1+i, hour, 0, 0, 0, time.UTC)
		entries = append(entries, RawConditions{Timestamp: ip(ts.Unix())})
	}

	readings := DailySummaries(entries, 7)
	require.Len(t, readings, 2)
	assert.NotEqual(t,
		readings[0].ObservedAt.Format(time.DateOnly),
		readings[1].ObservedAt.Format(time.DateOnly))
}

func TestDailySummaries_empty(t *testing.T) {
	assert.Empty(t, DailySummaries(nil, 3))
}

func ExampleDailySummaries() {
	ts := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC).Unix()
	readings := DailySummaries([]RawConditions{{Timestamp: &ts}}, 7)
	fmt.Println(len(readings), readings[0].Visibility)
	// Output: 1 N/A
}
