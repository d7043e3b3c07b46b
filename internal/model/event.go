package model

import (
	"time"
)

// EventType represents the type of booking event.
type EventType string

const (
	EventTypeBookingCreated EventType = "created"
	EventTypeBookingUpdated EventType = "updated"
	EventTypeBookingDeleted EventType = "deleted"
)

// BookingEvent records a change to the booking set.
type BookingEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Booking   Booking   `json:"booking"`
	Actor     string    `json:"actor,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorEvent represents an error pushed over a stream.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HeartbeatEvent represents a heartbeat event.
type HeartbeatEvent struct {
	Timestamp time.Time `json:"timestamp"`
}
