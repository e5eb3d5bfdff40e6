package dayclose

import (
	"context"
	"testing"
	"time"

	"fitura/backend/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShouldClose(t *testing.T) {
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		day      time.Time
		now      time.Time
		cutoff   string
		expected bool
	}{
		{"yesterday always closes", day(2024, 5, 1), now, DefaultCutoff, true},
		{"yesterday closes regardless of cutoff", day(2024, 5, 1), now, "22:00:00", true},
		{"today before cutoff stays open", day(2024, 5, 2), now, DefaultCutoff, false},
		{"today past cutoff closes", day(2024, 5, 2), time.Date(2024, 5, 2, 23, 59, 59, 1, time.UTC), DefaultCutoff, true},
		{"today past early cutoff closes", day(2024, 5, 2), now, "09:30:00", true},
		{"future day never closes", day(2024, 5, 3), now, DefaultCutoff, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldClose(tt.day, tt.now, tt.cutoff))
		})
	}
}

func TestNormalizeCutoff(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
		wantErr  bool
	}{
		{"empty uses default", "", DefaultCutoff, false},
		{"hh:mm padded", "22:00", "22:00:59", false},
		{"hh:mm:ss kept", "22:00:00", "22:00:00", false},
		{"hour out of range", "25:00", "", true},
		{"garbage", "midnight", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCutoff(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

type fakeLedger struct {
	records map[int]*fakeRecord
}

type fakeRecord struct {
	day     time.Time
	status  string
	outTime string
}

func (f *fakeLedger) Open(_ context.Context) ([]OpenRecord, error) {
	var open []OpenRecord
	for id, r := range f.records {
		if r.status == "IN" && r.outTime == "" {
			open = append(open, OpenRecord{ID: id, Day: r.day})
		}
	}
	return open, nil
}

func (f *fakeLedger) ForceClose(_ context.Context, id int, outTime string) error {
	f.records[id].status = "OUT"
	f.records[id].outTime = outTime
	return nil
}

func TestSweepClosesStaleRecordsOnce(t *testing.T) {
	now := time.Date(2024, 5, 2, 0, 30, 0, 0, time.UTC)

	ledger := &fakeLedger{records: map[int]*fakeRecord{
		1: {day: day(2024, 5, 1), status: "IN"},
		2: {day: day(2024, 5, 1), status: "OUT", outTime: "18:00"},
		3: {day: day(2024, 5, 2), status: "IN"},
	}}

	sweeper := NewSweeper(ledger, clock.Fixed{T: now})

	closed, err := sweeper.Sweep(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	assert.Equal(t, "OUT", ledger.records[1].status)
	assert.Equal(t, DefaultCutoff, ledger.records[1].outTime)

	// already-closed and same-day records untouched
	assert.Equal(t, "18:00", ledger.records[2].outTime)
	assert.Equal(t, "IN", ledger.records[3].status)

	// second sweep over the same data is a no-op
	closed, err = sweeper.Sweep(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
}

func TestSweepInvalidCutoff(t *testing.T) {
	sweeper := NewSweeper(&fakeLedger{}, clock.Real{})

	_, err := sweeper.Sweep(context.Background(), "not-a-time")
	assert.Error(t, err)
}
