package service

import (
	"context"

	"github.com/smartroom/booking-platform/internal/model"
)

// EventPublisher receives booking change events.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event *model.BookingEvent) (uint64, error)
}

// NopPublisher drops every event. It is used when no event bus is configured.
type NopPublisher struct{}

// PublishBookingEvent implements EventPublisher.
func (NopPublisher) PublishBookingEvent(context.Context, *model.BookingEvent) (uint64, error) {
	return 0, nil
}
