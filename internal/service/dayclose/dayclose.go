// Package dayclose force-closes attendance records left IN after their day has
// ended. It runs before every attendance read and write, and can also be
// triggered from an external cron; both paths are safe to overlap because a
// closed record no longer matches the open-record selection.
package dayclose

import (
	"context"
	"regexp"
	"strings"
	"time"

	"fitura/backend/internal/pkg/clock"
	"fitura/backend/internal/service/timesheet"

	"github.com/pkg/errors"
)

// DefaultCutoff is the end-of-day time a record is stamped with when nobody
// checked out.
const DefaultCutoff = "23:59:59"

var cutoffRe = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// NormalizeCutoff validates an end-of-day override and pads HH:MM to HH:MM:59.
// An empty value falls back to DefaultCutoff.
func NormalizeCutoff(s string) (string, error) {
	if s == "" {
		return DefaultCutoff, nil
	}
	if !cutoffRe.MatchString(s) {
		return "", errors.Errorf("invalid end-of-day time %q, expected HH:MM or HH:MM:SS", s)
	}
	if strings.Count(s, ":") == 1 {
		return s + ":59", nil
	}
	return s, nil
}

// OpenRecord is the slice of an attendance row the sweeper needs.
type OpenRecord struct {
	ID  int
	Day time.Time
}

// Ledger is the storage contract: list records still IN with no check-out, and
// close one of them.
type Ledger interface {
	Open(ctx context.Context) ([]OpenRecord, error)
	ForceClose(ctx context.Context, id int, outTime string) error
}

// ShouldClose decides whether an open record dated day must be force-closed at
// instant now. A past day always closes; today closes only past the cutoff; a
// future day is left alone.
func ShouldClose(day time.Time, now time.Time, cutoff string) bool {
	recordDay := timesheet.Day(day)
	today := timesheet.Day(now)

	if recordDay.Before(today) {
		return true
	}
	if recordDay.After(today) {
		return false
	}

	end, err := timesheet.ParseClock(cutoff)
	if err != nil {
		return false
	}
	endOfDay := today.Add(time.Duration(end.Hour())*time.Hour +
		time.Duration(end.Minute())*time.Minute +
		time.Duration(end.Second())*time.Second)

	return now.After(endOfDay)
}

type Sweeper struct {
	ledger Ledger
	clk    clock.Clock
}

func NewSweeper(ledger Ledger, clk clock.Clock) *Sweeper {
	return &Sweeper{ledger: ledger, clk: clk}
}

// Sweep closes every stale open record and returns how many it closed.
// Idempotent: records closed by an earlier or concurrent sweep are no longer
// selected, so a repeat run reports 0 for them.
func (s *Sweeper) Sweep(ctx context.Context, cutoff string) (int, error) {
	cutoff, err := NormalizeCutoff(cutoff)
	if err != nil {
		return 0, err
	}

	open, err := s.ledger.Open(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "listing open attendance")
	}

	now := s.clk.Now()

	closed := 0
	for _, record := range open {
		if !ShouldClose(record.Day, now, cutoff) {
			continue
		}
		if err := s.ledger.ForceClose(ctx, record.ID, cutoff); err != nil {
			return closed, errors.Wrapf(err, "closing attendance %d", record.ID)
		}
		closed++
	}

	return closed, nil
}
