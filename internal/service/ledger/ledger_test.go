package ledger

import (
	"context"
	"strconv"
	"testing"
	"time"

	"fitura/backend/internal/pkg/clock"
	"fitura/backend/internal/service/dayclose"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	nextID  int
	records map[int]Record
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, records: map[int]Record{}}
}

func (m *memStore) Find(_ context.Context, clientRef int, day time.Time) (Record, bool, error) {
	for _, r := range m.records {
		if r.ClientRef == clientRef && r.Day.Equal(day) {
			return r, true, nil
		}
	}
	return Record{}, false, nil
}

func (m *memStore) Insert(_ context.Context, record Record) (Record, error) {
	record.ID = m.nextID
	m.nextID++
	m.records[record.ID] = record
	return record, nil
}

func (m *memStore) Update(_ context.Context, record Record) error {
	m.records[record.ID] = record
	return nil
}

func (m *memStore) Open(_ context.Context) ([]dayclose.OpenRecord, error) {
	var open []dayclose.OpenRecord
	for _, r := range m.records {
		if r.Status == StatusIn && r.OutTime == "" {
			open = append(open, dayclose.OpenRecord{ID: r.ID, Day: r.Day})
		}
	}
	return open, nil
}

func (m *memStore) ForceClose(_ context.Context, id int, outTime string) error {
	r := m.records[id]
	r.Status = StatusOut
	r.OutTime = outTime
	m.records[id] = r
	return nil
}

type memClients map[string]int

func (m memClients) Resolve(_ context.Context, clientID string) (int, error) {
	ref, ok := m[clientID]
	if !ok {
		return 0, ErrClientNotFound
	}
	return ref, nil
}

func newService(store *memStore, clients memClients, now time.Time) *Service {
	sweeper := dayclose.NewSweeper(store, clock.Fixed{T: now})
	return NewService(store, clients, sweeper)
}

func TestCheckInToggle(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	now := day.Add(9 * time.Hour)

	store := newMemStore()
	svc := newService(store, memClients{"7": 42}, now)

	// first event opens the day
	got, err := svc.CheckIn(ctx, "7", day, "09:00")
	require.NoError(t, err)
	assert.Equal(t, StatusIn, got.Status)
	assert.Equal(t, "09:00", got.InTime)
	assert.Empty(t, got.OutTime)
	assert.Empty(t, got.Duration)

	// second event closes it, keeping the in time
	got, err = svc.CheckIn(ctx, "7", day, "18:00")
	require.NoError(t, err)
	assert.Equal(t, StatusOut, got.Status)
	assert.Equal(t, "09:00", got.InTime)
	assert.Equal(t, "18:00", got.OutTime)
	assert.Equal(t, "9h", got.Duration)

	// third event toggles back to IN with a fresh in time
	got, err = svc.CheckIn(ctx, "7", day, "19:30")
	require.NoError(t, err)
	assert.Equal(t, StatusIn, got.Status)
	assert.Equal(t, "19:30", got.InTime)
	assert.Empty(t, got.OutTime)

	// still exactly one record for the (client, day) pair
	assert.Len(t, store.records, 1)
}

func TestCheckInUnknownClient(t *testing.T) {
	store := newMemStore()
	svc := newService(store, memClients{}, time.Now())

	_, err := svc.CheckIn(context.Background(), "99", time.Now(), "09:00")
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.Empty(t, store.records)
}

func TestCheckInInvalidTime(t *testing.T) {
	store := newMemStore()
	svc := newService(store, memClients{"7": 42}, time.Now())

	_, err := svc.CheckIn(context.Background(), "7", time.Now(), "nine")
	assert.Error(t, err)
	assert.Empty(t, store.records)
}

func TestCheckInSweepsPreviousDayFirst(t *testing.T) {
	ctx := context.Background()
	yesterday := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	today := yesterday.AddDate(0, 0, 1)

	store := newMemStore()
	svc := newService(store, memClients{"7": 42}, yesterday.Add(9*time.Hour))

	_, err := svc.CheckIn(ctx, "7", yesterday, "09:00")
	require.NoError(t, err)

	// next day at 00:30: the stale IN record is force-closed before the new
	// day's record is opened
	svc = newService(store, memClients{"7": 42}, today.Add(30*time.Minute))

	got, err := svc.CheckIn(ctx, "7", today, "00:30")
	require.NoError(t, err)
	assert.Equal(t, StatusIn, got.Status)

	stale, found, err := store.Find(ctx, 42, yesterday)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, StatusOut, stale.Status)
	assert.Equal(t, dayclose.DefaultCutoff, stale.OutTime)
}

func TestOneRecordPerClientPerDay(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	store := newMemStore()
	svc := newService(store, memClients{"7": 42, "8": 43}, day.Add(10*time.Hour))

	for i := 0; i < 5; i++ {
		_, err := svc.CheckIn(ctx, "7", day, "10:0"+strconv.Itoa(i))
		require.NoError(t, err)
	}
	_, err := svc.CheckIn(ctx, "8", day, "10:00")
	require.NoError(t, err)

	assert.Len(t, store.records, 2)
}
