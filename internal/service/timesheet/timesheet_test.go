package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		inTime   string
		outTime  string
		expected string
	}{
		{"hours and minutes", "09:00", "10:30", "1h 30m"},
		{"zero duration", "09:00", "09:00", "0m"},
		{"overnight session", "23:30", "00:15", "45m"},
		{"whole hours elide minutes", "09:00", "18:00", "9h"},
		{"minutes only", "10:00", "10:45", "45m"},
		{"seconds truncated to whole minutes", "09:00:30", "09:02:10", "1m"},
		{"forced checkout at cutoff", "09:00", "23:59:59", "14h 59m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Duration(tt.inTime, tt.outTime)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDurationInvalidInput(t *testing.T) {
	_, err := Duration("9 o'clock", "10:00")
	assert.Error(t, err)

	_, err = Duration("09:00", "25:00")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())

	got, err = ParseClock("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, 59, got.Second())

	_, err = ParseClock("")
	assert.Error(t, err)
}

func TestDay(t *testing.T) {
	in := time.Date(2024, 5, 1, 18, 42, 13, 500, time.UTC)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Day(in))
}
