package schedule

import (
	"time"

	"github.com/smartroom/booking-platform/internal/model"
)

// The functions below never modify their input slice; each returns a fresh set.

// Insert returns the set with b appended.
func Insert(set []model.Booking, b model.Booking) []model.Booking {
	out := make([]model.Booking, 0, len(set)+1)
	out = append(out, set...)
	return append(out, b)
}

// Replace returns the set with the booking sharing updated's id swapped for it, keeping the
// original id and room. The second result is false when no booking matched.
func Replace(set []model.Booking, updated model.Booking) ([]model.Booking, bool) {
	out := make([]model.Booking, len(set))
	copy(out, set)
	for i := range out {
		if out[i].ID != updated.ID {
			continue
		}
		out[i].Title = updated.Title
		out[i].Organizer = updated.Organizer
		out[i].StartTime = updated.StartTime
		out[i].EndTime = updated.EndTime
		out[i].Attendees = updated.Attendees
		return out, true
	}
	return set, false
}

// Remove returns the set without the booking with id, preserving order.
func Remove(set []model.Booking, id string) ([]model.Booking, bool) {
	idx := IndexOf(set, id)
	if idx < 0 {
		return set, false
	}
	out := make([]model.Booking, 0, len(set)-1)
	out = append(out, set[:idx]...)
	return append(out, set[idx+1:]...), true
}

// IndexOf returns the position of the booking with id, or -1.
func IndexOf(set []model.Booking, id string) int {
	for i := range set {
		if set[i].ID == id {
			return i
		}
	}
	return -1
}

// OnDay returns the bookings whose start falls on day's calendar date, in day's location.
func OnDay(set []model.Booking, day time.Time) []model.Booking {
	var out []model.Booking
	for _, b := range set {
		if SameDay(day, b.StartTime) {
			out = append(out, b)
		}
	}
	return out
}
