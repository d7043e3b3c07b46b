package model

import (
	"time"
)

// Booking is a reservation of a room for a half-open time interval [StartTime, EndTime).
type Booking struct {
	ID        string    `json:"id"`
	RoomID    ID        `json:"roomId"`
	Title     string    `json:"title"`
	Organizer string    `json:"organizer"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Attendees int       `json:"attendees"`
}

// Duration returns the length of the booking.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// SubmitMode selects between creating a booking and editing an existing one.
type SubmitMode string

const (
	SubmitModeCreate SubmitMode = "create"
	SubmitModeEdit   SubmitMode = "edit"
)

// BookingForm carries the fields of a booking submission.
// Date is YYYY-MM-DD, StartTime is HH:MM, Duration is in minutes.
type BookingForm struct {
	ID        string `json:"id,omitempty"`
	RoomID    ID     `json:"roomId"`
	Title     string `json:"title"`
	Organizer string `json:"organizer"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Duration  int    `json:"duration"`
	Attendees int    `json:"attendees"`
}

// BookingResponse is returned after a successful create or edit.
type BookingResponse struct {
	Booking *Booking `json:"booking"`
	Message string   `json:"message"`
}

// ListBookingsResponse is the response for listing bookings.
type ListBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
	Total    int       `json:"total"`
}
