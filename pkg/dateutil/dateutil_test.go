package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKeyOrdering(t *testing.T) {
	tests := []struct {
		name   string
		a, b   MonthKey
		before bool
		months int
	}{
		{"same month", MonthKey{2024, time.March}, MonthKey{2024, time.March}, false, 0},
		{"later month same year", MonthKey{2024, time.January}, MonthKey{2024, time.June}, true, 5},
		{"across year end", MonthKey{2023, time.November}, MonthKey{2024, time.February}, true, 3},
		{"earlier", MonthKey{2025, time.January}, MonthKey{2024, time.December}, false, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.before, tt.a.Before(tt.b))
			assert.Equal(t, tt.months, MonthsBetween(tt.a, tt.b))
		})
	}
}

func TestMonthKeyNext(t *testing.T) {
	assert.Equal(t, MonthKey{2025, time.January}, MonthKey{2024, time.December}.Next())
	assert.Equal(t, MonthKey{2024, time.July}, MonthKey{2024, time.June}.Next())
}

func TestInRange(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)
	assert.True(t, InRange(time.Date(2005, 6, 1, 0, 0, 0, 0, time.UTC), start, end))
	assert.True(t, InRange(start, start, end))
	assert.False(t, InRange(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), start, end))
	assert.False(t, InRange(time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), start, end))
	assert.True(t, InRange(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{}, end))
	assert.True(t, InRange(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC), start, time.Time{}))
}

func TestParseObservationDate(t *testing.T) {
	d, err := ParseObservationDate("1987-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1987, 1, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseObservationDate("01/01/1987")
	assert.Error(t, err)
}
