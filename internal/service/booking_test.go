package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/internal/schedule"
	"github.com/smartroom/booking-platform/pkg/logger"
)

var refNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type staticFetcher struct {
	rooms []model.Room
	err   error
}

func (f *staticFetcher) FetchRooms(context.Context) ([]model.Room, error) {
	return f.rooms, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, e *model.BookingEvent) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *e)
	return uint64(len(p.events)), p.err
}

func testRooms() []model.Room {
	return []model.Room{
		{ID: "1", Name: "Galaxy", Capacity: 20, Status: model.RoomStatusAvailable},
		{ID: "2", Name: "Nebula", Capacity: 8, Status: model.RoomStatusBusy},
		{ID: "3", Name: "Star", Capacity: 4, Status: model.RoomStatusAvailable},
	}
}

func newRoomService(t *testing.T) *RoomService {
	t.Helper()
	rooms := NewRoomService(&staticFetcher{rooms: testRooms()}, logger.NewNop())
	require.NoError(t, rooms.Refresh(context.Background()))
	return rooms
}

func newBookingService(t *testing.T) (*BookingService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewBookingService(newRoomService(t), pub, time.UTC, func() time.Time { return refNow }, logger.NewNop())
	return svc, pub
}

func form(room model.ID, date, start string, minutes, attendees int) model.BookingForm {
	return model.BookingForm{
		RoomID:    room,
		Title:     "Planning",
		Organizer: "Mai",
		Date:      date,
		StartTime: start,
		Duration:  minutes,
		Attendees: attendees,
	}
}

func TestSubmitCreate(t *testing.T) {
	svc, pub := newBookingService(t)

	b, err := svc.Submit(context.Background(), form("1", "2026-03-10", "09:00", 60, 5), model.SubmitModeCreate, "mai@example.com")
	require.NoError(t, err)

	assert.Equal(t, "1", b.ID)
	assert.Equal(t, model.ID("1"), b.RoomID)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), b.StartTime)
	assert.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), b.EndTime)
	assert.Len(t, svc.List(), 1)

	require.Len(t, pub.events, 1)
	assert.Equal(t, model.EventTypeBookingCreated, pub.events[0].Type)
	assert.Equal(t, "mai@example.com", pub.events[0].Actor)
}

func TestSubmitCreateAssignsDistinctIDs(t *testing.T) {
	svc, _ := newBookingService(t)

	seen := map[string]bool{}
	for _, start := range []string{"09:00", "10:00", "11:00", "12:00"} {
		b, err := svc.Submit(context.Background(), form("1", "2026-03-10", start, 60, 2), model.SubmitModeCreate, "")
		require.NoError(t, err)
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}

func TestSeedAdvancesIDCounter(t *testing.T) {
	svc, _ := newBookingService(t)
	svc.Seed(SeedBookings(refNow, time.UTC))

	b, err := svc.Submit(context.Background(), form("1", "2026-03-11", "15:00", 30, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)
	assert.Equal(t, "4", b.ID)
}

func TestSubmitPastTimeAsymmetry(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Submit(context.Background(), form("1", "2026-03-10", "07:00", 30, 2), model.SubmitModeCreate, "")
	var pastErr *PastTimeError
	require.True(t, errors.As(err, &pastErr))
	assert.Empty(t, svc.List())

	b, err := svc.Submit(context.Background(), form("1", "2026-03-10", "09:00", 30, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)

	edit := form("1", "2026-03-10", "07:00", 30, 2)
	edit.ID = b.ID
	edited, err := svc.Submit(context.Background(), edit, model.SubmitModeEdit, "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC), edited.StartTime)
}

func TestSubmitStartingNowIsNotPast(t *testing.T) {
	svc, _ := newBookingService(t)
	_, err := svc.Submit(context.Background(), form("1", "2026-03-10", "08:00", 30, 2), model.SubmitModeCreate, "")
	assert.NoError(t, err)
}

func TestSubmitOverlap(t *testing.T) {
	svc, pub := newBookingService(t)

	first, err := svc.Submit(context.Background(), form("1", "2026-03-10", "09:00", 60, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), form("1", "2026-03-10", "09:30", 60, 2), model.SubmitModeCreate, "")
	var overlap *OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, "Galaxy", overlap.RoomName)
	assert.Equal(t, first.ID, overlap.ConflictingID)
	assert.Contains(t, overlap.Error(), "Galaxy")

	assert.Len(t, svc.List(), 1)
	assert.Len(t, pub.events, 1)
}

func TestSubmitTouchingBoundaries(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Submit(context.Background(), form("1", "2026-03-10", "09:00", 60, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), form("1", "2026-03-10", "10:00", 60, 2), model.SubmitModeCreate, "")
	assert.NoError(t, err)

	_, err = svc.Submit(context.Background(), form("1", "2026-03-10", "08:00", 60, 2), model.SubmitModeCreate, "")
	assert.NoError(t, err)

	assert.Len(t, svc.List(), 3)
}

func TestSubmitEdit(t *testing.T) {
	svc, pub := newBookingService(t)

	b, err := svc.Submit(context.Background(), form("1", "2026-03-10", "09:00", 60, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)

	t.Run("overlapping its own slot", func(t *testing.T) {
		edit := form("1", "2026-03-10", "09:30", 60, 4)
		edit.ID = b.ID
		edit.Title = "Planning v2"

		edited, err := svc.Submit(context.Background(), edit, model.SubmitModeEdit, "")
		require.NoError(t, err)
		assert.Equal(t, b.ID, edited.ID)
		assert.Equal(t, "Planning v2", edited.Title)
		assert.Equal(t, 4, edited.Attendees)
		assert.Equal(t, time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC), edited.EndTime)
	})

	t.Run("room cannot change", func(t *testing.T) {
		edit := form("2", "2026-03-10", "13:00", 60, 3)
		edit.ID = b.ID

		edited, err := svc.Submit(context.Background(), edit, model.SubmitModeEdit, "")
		require.NoError(t, err)
		assert.Equal(t, model.ID("1"), edited.RoomID)

		stored, err := svc.Get(b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ID("1"), stored.RoomID)
		assert.Equal(t, 13, stored.StartTime.Hour())
	})

	t.Run("unknown id", func(t *testing.T) {
		edit := form("1", "2026-03-10", "15:00", 60, 3)
		edit.ID = "999"
		_, err := svc.Submit(context.Background(), edit, model.SubmitModeEdit, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	require.NotEmpty(t, pub.events)
	assert.Equal(t, model.EventTypeBookingUpdated, pub.events[len(pub.events)-1].Type)
}

func TestSubmitEditIntoOtherRoomsSlot(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Submit(context.Background(), form("2", "2026-03-10", "14:00", 120, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)
	mine, err := svc.Submit(context.Background(), form("1", "2026-03-10", "09:00", 60, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)

	edit := form("1", "2026-03-10", "14:30", 60, 2)
	edit.ID = mine.ID
	_, err = svc.Submit(context.Background(), edit, model.SubmitModeEdit, "")
	assert.NoError(t, err)
}

func TestSubmitEditIntoSameRoomConflict(t *testing.T) {
	svc, _ := newBookingService(t)

	other, err := svc.Submit(context.Background(), form("1", "2026-03-10", "14:00", 60, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)
	mine, err := svc.Submit(context.Background(), form("1", "2026-03-10", "09:00", 60, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)

	edit := form("1", "2026-03-10", "14:30", 60, 2)
	edit.ID = mine.ID
	_, err = svc.Submit(context.Background(), edit, model.SubmitModeEdit, "")

	var overlap *OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, other.ID, overlap.ConflictingID)

	stored, err := svc.Get(mine.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.StartTime.Hour())
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name  string
		form  model.BookingForm
		field string
	}{
		{"missing title", func() model.BookingForm { f := form("1", "2026-03-10", "09:00", 60, 2); f.Title = " "; return f }(), "title"},
		{"missing organizer", func() model.BookingForm { f := form("1", "2026-03-10", "09:00", 60, 2); f.Organizer = ""; return f }(), "organizer"},
		{"zero attendees", form("1", "2026-03-10", "09:00", 60, 0), "attendees"},
		{"over capacity", form("3", "2026-03-10", "09:00", 60, 5), "attendees"},
		{"zero duration", form("1", "2026-03-10", "09:00", 0, 2), "duration"},
		{"over a day", form("1", "2026-03-10", "09:00", 24*60+1, 2), "duration"},
		{"wrapping duration", form("1", "2026-03-10", "09:00", 307445735, 2), "duration"},
		{"bad date", form("1", "10/03/2026", "09:00", 60, 2), "startTime"},
		{"bad time", form("1", "2026-03-10", "9am", 60, 2), "startTime"},
		{"missing room", form("", "2026-03-10", "09:00", 60, 2), "roomId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newBookingService(t)
			_, err := svc.Submit(context.Background(), tt.form, model.SubmitModeCreate, "")

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Contains(t, vErr.FieldErrors, tt.field)
			assert.Empty(t, svc.List())
		})
	}
}

func TestSubmitUnknownRoom(t *testing.T) {
	svc, _ := newBookingService(t)
	_, err := svc.Submit(context.Background(), form("42", "2026-03-10", "09:00", 60, 2), model.SubmitModeCreate, "")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSubmitPublishFailureDoesNotRollBack(t *testing.T) {
	svc, pub := newBookingService(t)
	pub.err = errors.New("bus down")

	_, err := svc.Submit(context.Background(), form("1", "2026-03-10", "09:00", 60, 2), model.SubmitModeCreate, "")
	require.NoError(t, err)
	assert.Len(t, svc.List(), 1)
}

func TestDelete(t *testing.T) {
	svc, pub := newBookingService(t)
	svc.Seed(SeedBookings(refNow, time.UTC))
	before := svc.List()

	t.Run("unknown id is a no-op", func(t *testing.T) {
		asked := false
		removed, err := svc.Delete(context.Background(), "missing", func(model.Booking) bool {
			asked = true
			return true
		}, "")
		require.NoError(t, err)
		assert.False(t, removed)
		assert.False(t, asked)
		assert.Equal(t, before, svc.List())
	})

	t.Run("declined confirmation", func(t *testing.T) {
		removed, err := svc.Delete(context.Background(), "2", func(model.Booking) bool { return false }, "")
		assert.ErrorIs(t, err, ErrConfirmationRequired)
		assert.False(t, removed)
		assert.Equal(t, before, svc.List())
	})

	t.Run("nil confirmation", func(t *testing.T) {
		_, err := svc.Delete(context.Background(), "2", nil, "")
		assert.ErrorIs(t, err, ErrConfirmationRequired)
	})

	t.Run("confirmed", func(t *testing.T) {
		var confirmed model.Booking
		removed, err := svc.Delete(context.Background(), "2", func(b model.Booking) bool {
			confirmed = b
			return true
		}, "ops")
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, "2", confirmed.ID)

		remaining := svc.List()
		require.Len(t, remaining, 2)
		assert.Equal(t, "1", remaining[0].ID)
		assert.Equal(t, "3", remaining[1].ID)

		_, err = svc.Get("2")
		assert.ErrorIs(t, err, ErrNotFound)

		last := pub.events[len(pub.events)-1]
		assert.Equal(t, model.EventTypeBookingDeleted, last.Type)
		assert.Equal(t, "2", last.Booking.ID)
	})
}

func TestDeleteReportsBookingAsRemoved(t *testing.T) {
	svc, pub := newBookingService(t)
	svc.Seed(SeedBookings(refNow, time.UTC))

	// An edit lands between confirmation and removal.
	removed, err := svc.Delete(context.Background(), "2", func(b model.Booking) bool {
		edit := form("", "2026-03-10", "16:00", 30, 4)
		edit.ID = b.ID
		_, err := svc.Submit(context.Background(), edit, model.SubmitModeEdit, "")
		require.NoError(t, err)
		return true
	}, "ops")
	require.NoError(t, err)
	assert.True(t, removed)

	last := pub.events[len(pub.events)-1]
	assert.Equal(t, model.EventTypeBookingDeleted, last.Type)
	assert.Equal(t, time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC), last.Booking.StartTime)
	assert.Equal(t, 30*time.Minute, last.Booking.Duration())
}

func TestNoOverlapInvariantHolds(t *testing.T) {
	svc, _ := newBookingService(t)
	rng := rand.New(rand.NewSource(7))
	rooms := []model.ID{"1", "2", "3"}
	starts := []string{"08:00", "08:30", "09:00", "09:45", "10:00", "11:15", "12:00", "13:30"}
	durations := []int{30, 45, 60, 90, 120}

	for i := 0; i < 300; i++ {
		f := form(rooms[rng.Intn(len(rooms))], "2026-03-11", starts[rng.Intn(len(starts))], durations[rng.Intn(len(durations))], 1)
		mode := model.SubmitModeCreate
		if current := svc.List(); len(current) > 0 && rng.Intn(3) == 0 {
			f.ID = current[rng.Intn(len(current))].ID
			mode = model.SubmitModeEdit
		}
		_, _ = svc.Submit(context.Background(), f, mode, "")

		all := svc.List()
		for a := range all {
			for b := a + 1; b < len(all); b++ {
				if all[a].RoomID != all[b].RoomID {
					continue
				}
				require.False(t,
					schedule.Overlaps(all[a].StartTime, all[a].EndTime, all[b].StartTime, all[b].EndTime),
					"bookings %s and %s overlap", all[a].ID, all[b].ID)
			}
		}
	}
}

func TestConcurrentSubmitsKeepInvariant(t *testing.T) {
	svc, _ := newBookingService(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), form("1", "2026-03-12", "10:00", 60, 2), model.SubmitModeCreate, "")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, svc.List(), 1)
}
