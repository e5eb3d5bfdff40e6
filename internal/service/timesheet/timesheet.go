// Package timesheet holds the pure time-of-day arithmetic behind attendance:
// clock parsing, day normalization and elapsed-duration formatting. Nothing in
// here touches storage.
package timesheet

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const (
	layoutHM  = "15:04"
	layoutHMS = "15:04:05"
)

// ParseClock accepts a wall-clock time as HH:MM or HH:MM:SS.
func ParseClock(s string) (time.Time, error) {
	if t, err := time.Parse(layoutHMS, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(layoutHM, s)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid time %q, expected HH:MM or HH:MM:SS", s)
	}
	return t, nil
}

// Day normalizes a timestamp to midnight of its calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Duration formats the elapsed time between a check-in and a check-out as
// "{H}h {M}m", eliding a zero hour or minute part ("45m", "2h", "2h 30m").
// A check-out chronologically before the check-in is taken to be on the next
// day. The difference is truncated to whole minutes.
func Duration(inTime, outTime string) (string, error) {
	in, err := ParseClock(inTime)
	if err != nil {
		return "", errors.Wrap(err, "parsing in time")
	}
	out, err := ParseClock(outTime)
	if err != nil {
		return "", errors.Wrap(err, "parsing out time")
	}

	if out.Before(in) {
		out = out.Add(24 * time.Hour)
	}

	minutes := int(out.Sub(in).Minutes())

	hours := minutes / 60
	minutes = minutes % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes), nil
	case minutes == 0:
		return fmt.Sprintf("%dh", hours), nil
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes), nil
	}
}
