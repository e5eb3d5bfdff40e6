// Package ledger owns the per-client, per-day attendance state machine. A
// check-in event toggles the day's record between IN and OUT; the sweeper is
// always run first so stale records from earlier days are closed before any
// new state is derived.
package ledger

import (
	"context"
	"time"

	"fitura/backend/internal/service/dayclose"
	"fitura/backend/internal/service/timesheet"

	"github.com/pkg/errors"
)

const (
	StatusIn  = "IN"
	StatusOut = "OUT"
)

// ErrClientNotFound marks a client reference that does not resolve, so the
// boundary can answer 404 instead of a generic failure.
var ErrClientNotFound = errors.New("client not found")

// Record is the storage-agnostic view of one attendance row.
type Record struct {
	ID        int
	ClientRef int
	Day       time.Time
	InTime    string
	OutTime   string
	Status    string
}

// Store persists attendance keyed by (clientRef, day).
type Store interface {
	Find(ctx context.Context, clientRef int, day time.Time) (Record, bool, error)
	Insert(ctx context.Context, record Record) (Record, error)
	Update(ctx context.Context, record Record) error
}

// Clients resolves a human-facing client number (or an internal reference, for
// backward compatibility) to the internal reference. Implementations return
// ErrClientNotFound when nothing matches.
type Clients interface {
	Resolve(ctx context.Context, clientID string) (int, error)
}

type Service struct {
	store   Store
	clients Clients
	sweeper *dayclose.Sweeper
}

func NewService(store Store, clients Clients, sweeper *dayclose.Sweeper) *Service {
	return &Service{store: store, clients: clients, sweeper: sweeper}
}

// Result is a check-in outcome; Duration is set once the record is OUT.
type Result struct {
	Record
	Duration string
}

// Sweep force-closes stale open records. Exposed so reads can honor the
// sweep-before-every-read contract and so a cron can trigger it with a custom
// cutoff.
func (s *Service) Sweep(ctx context.Context, cutoff string) (int, error) {
	return s.sweeper.Sweep(ctx, cutoff)
}

// CheckIn records a check-in event for a client. First event of the day opens
// the record as IN, the second closes it as OUT, and a third flips it back to
// IN with a fresh in time. The toggle-back behavior mirrors the front desk
// workflow where a mistaken checkout is undone by scanning again.
func (s *Service) CheckIn(ctx context.Context, clientID string, day time.Time, at string) (Result, error) {
	if _, err := timesheet.ParseClock(at); err != nil {
		return Result{}, err
	}

	// Stale records from previous days must be closed before toggling.
	if _, err := s.sweeper.Sweep(ctx, dayclose.DefaultCutoff); err != nil {
		return Result{}, errors.Wrap(err, "sweeping before check-in")
	}

	clientRef, err := s.clients.Resolve(ctx, clientID)
	if err != nil {
		return Result{}, err
	}

	day = timesheet.Day(day)

	record, found, err := s.store.Find(ctx, clientRef, day)
	if err != nil {
		return Result{}, errors.Wrap(err, "finding attendance")
	}

	if !found {
		record = Record{
			ClientRef: clientRef,
			Day:       day,
			InTime:    at,
			Status:    StatusIn,
		}
		record, err = s.store.Insert(ctx, record)
		if err != nil {
			return Result{}, errors.Wrap(err, "inserting attendance")
		}
		return Result{Record: record}, nil
	}

	switch record.Status {
	case StatusIn:
		record.Status = StatusOut
		record.OutTime = at
	case StatusOut:
		record.Status = StatusIn
		record.InTime = at
		record.OutTime = ""
	default:
		return Result{}, errors.Errorf("attendance %d has unknown status %q", record.ID, record.Status)
	}

	if err := s.store.Update(ctx, record); err != nil {
		return Result{}, errors.Wrap(err, "updating attendance")
	}

	result := Result{Record: record}
	if record.Status == StatusOut {
		duration, err := timesheet.Duration(record.InTime, record.OutTime)
		if err != nil {
			return Result{}, errors.Wrap(err, "computing duration")
		}
		result.Duration = duration
	}

	return result, nil
}
