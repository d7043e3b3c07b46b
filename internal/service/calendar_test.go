package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartroom/booking-platform/internal/model"
)

type fixedBookings []model.Booking

func (f fixedBookings) List() []model.Booking { return append([]model.Booking(nil), f...) }

func newCalendar(t *testing.T, now time.Time, bookings []model.Booking) *CalendarService {
	t.Helper()
	return NewCalendarService(newRoomService(t), fixedBookings(bookings), time.UTC, 7, 19, 10*time.Millisecond,
		func() time.Time { return now })
}

func TestCalendarDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	cal := newCalendar(t, now, SeedBookings(now, time.UTC))

	day, err := cal.Day("2026-03-10")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", day.Date)
	assert.Equal(t, 7, day.VisibleStartHour)
	assert.Equal(t, 19, day.VisibleEndHour)
	assert.Len(t, day.HourMarks, 13)

	require.NotNil(t, day.CurrentTime)
	assert.InDelta(t, 50.0, *day.CurrentTime, 0.001)

	require.Len(t, day.Rows, 3)
	assert.Equal(t, model.ID("1"), day.Rows[0].Room.ID)

	require.Len(t, day.Rows[0].Bookings, 1)
	first := day.Rows[0].Bookings[0]
	assert.InDelta(t, 120.0/720*100, first.LeftPercent, 0.001)
	assert.InDelta(t, 60.0/720*100, first.WidthPercent, 0.001)
	assert.False(t, first.Clipped)

	require.Len(t, day.Rows[1].Bookings, 1)
	assert.Equal(t, "2", day.Rows[1].Bookings[0].Booking.ID)

	// Room 3's booking is tomorrow.
	assert.Empty(t, day.Rows[2].Bookings)
}

func TestCalendarDayEveningBookingStaysInBounds(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := model.Booking{
		ID:        "9",
		RoomID:    "1",
		Title:     "Late sync",
		StartTime: time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC),
		Attendees: 2,
	}
	cal := newCalendar(t, now, []model.Booking{evening})

	day, err := cal.Day("2026-03-10")
	require.NoError(t, err)
	require.Len(t, day.Rows[0].Bookings, 1)

	got := day.Rows[0].Bookings[0]
	assert.Equal(t, 100.0, got.LeftPercent)
	assert.Zero(t, got.WidthPercent)
	assert.True(t, got.Clipped)
}

func TestCalendarDayDefaultsToToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	cal := newCalendar(t, now, nil)

	day, err := cal.Day("")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", day.Date)
	assert.Nil(t, day.CurrentTime)
	for _, row := range day.Rows {
		assert.NotNil(t, row.Bookings)
	}
}

func TestCalendarIndicatorHiddenOnOtherDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cal := newCalendar(t, now, nil)

	day, err := cal.Day("2026-03-11")
	require.NoError(t, err)
	assert.Nil(t, day.CurrentTime)
}

func TestCalendarParseDayRejectsBadDate(t *testing.T) {
	cal := newCalendar(t, refNow, nil)

	_, err := cal.Day("03/10/2026")
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.FieldErrors, "date")
}

func TestCalendarWatch(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	cal := newCalendar(t, now, nil)
	day, err := cal.ParseDay("2026-03-10")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events := cal.Watch(ctx, day)

	first := <-events
	assert.Equal(t, "2026-03-10", first.Date)
	require.NotNil(t, first.Percent)
	assert.InDelta(t, 25.0, *first.Percent, 0.001)

	second := <-events
	assert.Equal(t, first.Date, second.Date)

	cancel()
	for range events {
	}
}
