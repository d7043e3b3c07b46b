package service

import (
	"time"

	"github.com/smartroom/booking-platform/internal/model"
)

// SeedBookings returns the demo booking set anchored on now's calendar day in loc:
// two bookings today and one tomorrow.
func SeedBookings(now time.Time, loc *time.Location) []model.Booking {
	today := now.In(loc)
	y, m, d := today.Date()
	at := func(dayOffset, hour int) time.Time {
		return time.Date(y, m, d+dayOffset, hour, 0, 0, 0, loc)
	}

	return []model.Booking{
		{
			ID:        "1",
			RoomID:    "1",
			Title:     "Tech team daily",
			Organizer: "Nguyen Van A",
			StartTime: at(0, 9),
			EndTime:   at(0, 10),
			Attendees: 6,
		},
		{
			ID:        "2",
			RoomID:    "2",
			Title:     "Q3 product review",
			Organizer: "Tran Thi B",
			StartTime: at(0, 14),
			EndTime:   at(0, 16),
			Attendees: 15,
		},
		{
			ID:        "3",
			RoomID:    "3",
			Title:     "Candidate interview",
			Organizer: "Le Van C",
			StartTime: at(1, 10),
			EndTime:   at(1, 11),
			Attendees: 3,
		},
	}
}
