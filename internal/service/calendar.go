package service

import (
	"context"
	"time"

	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/internal/schedule"
)

const dateLayout = "2006-01-02"

// CalendarService builds the day timeline and drives the current-time indicator.
type CalendarService struct {
	rooms     RoomSource
	bookings  BookingSource
	loc       *time.Location
	startHour int
	endHour   int
	tick      time.Duration
	now       func() time.Time
}

// NewCalendarService creates a calendar over the visible window [startHour, endHour).
func NewCalendarService(rooms RoomSource, bookings BookingSource, loc *time.Location, startHour, endHour int, tick time.Duration, now func() time.Time) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	if tick <= 0 {
		tick = time.Minute
	}
	return &CalendarService{
		rooms:     rooms,
		bookings:  bookings,
		loc:       loc,
		startHour: startHour,
		endHour:   endHour,
		tick:      tick,
		now:       now,
	}
}

// ParseDay resolves a YYYY-MM-DD date to midnight in the calendar location. An empty
// string means today.
func (s *CalendarService) ParseDay(date string) (time.Time, error) {
	if date == "" {
		y, m, d := s.now().In(s.loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, s.loc), nil
	}
	day, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		v := &ValidationError{}
		v.add("date", "must be YYYY-MM-DD")
		return time.Time{}, v
	}
	return day, nil
}

// Day returns the timeline for the given date: one row per room in directory order, each
// holding the bookings that start on that day with their horizontal placement.
func (s *CalendarService) Day(date string) (*model.CalendarDay, error) {
	day, err := s.ParseDay(date)
	if err != nil {
		return nil, err
	}

	dayBookings := schedule.OnDay(s.bookings.List(), day)
	rooms := s.rooms.List("")

	rows := make([]model.TimelineRow, 0, len(rooms))
	for _, room := range rooms {
		row := model.TimelineRow{Room: room, Bookings: []model.TimelineBooking{}}
		for _, b := range dayBookings {
			if b.RoomID != room.ID {
				continue
			}
			pos := schedule.Layout(b.StartTime.In(s.loc), b.EndTime.In(s.loc), s.startHour, s.endHour)
			row.Bookings = append(row.Bookings, model.TimelineBooking{
				Booking:      b,
				LeftPercent:  pos.LeftPercent,
				WidthPercent: pos.WidthPercent,
				Clipped:      pos.Clipped,
			})
		}
		rows = append(rows, row)
	}

	return &model.CalendarDay{
		Date:             day.Format(dateLayout),
		VisibleStartHour: s.startHour,
		VisibleEndHour:   s.endHour,
		HourMarks:        schedule.HourMarks(s.startHour, s.endHour),
		CurrentTime:      s.Indicator(day),
		Rows:             rows,
	}, nil
}

// Indicator returns the current-time position on day's timeline, or nil when it is hidden.
func (s *CalendarService) Indicator(day time.Time) *float64 {
	pos, ok := schedule.CurrentTimePosition(s.now().In(s.loc), day, s.startHour, s.endHour)
	if !ok {
		return nil
	}
	return &pos
}

// Watch emits the indicator for day immediately and then on every tick until ctx is done.
// The channel is closed when Watch stops.
func (s *CalendarService) Watch(ctx context.Context, day time.Time) <-chan model.TimeIndicatorEvent {
	out := make(chan model.TimeIndicatorEvent, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()

		for {
			event := model.TimeIndicatorEvent{
				Date:      day.Format(dateLayout),
				Percent:   s.Indicator(day),
				Timestamp: s.now(),
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
