package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartroom/booking-platform/internal/model"
)

func TestEventSubject(t *testing.T) {
	assert.Equal(t, "booking.created.3", EventSubject(model.EventTypeBookingCreated, "3"))
	assert.Equal(t, "booking.deleted.12", EventSubject(model.EventTypeBookingDeleted, "12"))
}

func TestRoomFilterMatchesEverySubjectForRoom(t *testing.T) {
	assert.Equal(t, "booking.*.3", RoomFilter("3"))
}
