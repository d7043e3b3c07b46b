package service

import (
	"math"

	"github.com/smartroom/booking-platform/internal/model"
)

// upcomingLimit is how many bookings the summary lists.
const upcomingLimit = 4

// RoomSource lists the room directory.
type RoomSource interface {
	List(query string) []model.Room
}

// BookingSource lists the booking set.
type BookingSource interface {
	List() []model.Booking
}

// StatsService computes the usage summary shown on the dashboard.
type StatsService struct {
	rooms    RoomSource
	bookings BookingSource
}

// NewStatsService creates a new stats service.
func NewStatsService(rooms RoomSource, bookings BookingSource) *StatsService {
	return &StatsService{rooms: rooms, bookings: bookings}
}

// Summary aggregates the current room directory and booking set.
func (s *StatsService) Summary() *model.Stats {
	rooms := s.rooms.List("")
	bookings := s.bookings.List()

	perRoom := make(map[model.ID]int, len(rooms))
	for _, b := range bookings {
		perRoom[b.RoomID]++
	}

	stats := &model.Stats{
		TotalRooms:      len(rooms),
		ActiveBookings:  len(bookings),
		BookingsPerRoom: make([]model.RoomUsage, 0, len(rooms)),
	}

	for _, room := range rooms {
		stats.TotalCapacity += room.Capacity
		if room.Status == model.RoomStatusBusy {
			stats.BusyRooms++
		}
		stats.BookingsPerRoom = append(stats.BookingsPerRoom, model.RoomUsage{
			RoomID:   room.ID,
			Name:     room.Name,
			Bookings: perRoom[room.ID],
		})
	}

	if stats.TotalRooms > 0 {
		stats.OccupancyRate = int(math.Round(float64(stats.BusyRooms) / float64(stats.TotalRooms) * 100))
	}

	n := len(bookings)
	if n > upcomingLimit {
		n = upcomingLimit
	}
	stats.Upcoming = bookings[:n]

	return stats
}
