package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/smartroom/booking-platform/internal/model"
)

const (
	// StreamName is the name of the booking events stream.
	StreamName = "BOOKINGS"

	// SubjectPrefix is the prefix for all booking subjects.
	SubjectPrefix = "booking"
)

// StreamManager handles JetStream stream operations.
type StreamManager struct {
	client *Client
}

// NewStreamManager creates a new stream manager.
func NewStreamManager(client *Client) *StreamManager {
	return &StreamManager{client: client}
}

// EnsureStream ensures the bookings stream exists with proper configuration.
func (m *StreamManager) EnsureStream(ctx context.Context) error {
	js := m.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, jetstream.ErrStreamNotFound) {
		return fmt.Errorf("failed to look up stream: %w", err)
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		MaxBytes:    1024 * 1024 * 1024,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Booking lifecycle events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// EventSubject returns the subject for a booking event, e.g. booking.created.3.
func EventSubject(eventType model.EventType, roomID model.ID) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, eventType, roomID)
}

// RoomFilter returns the filter subject for every event on a room.
func RoomFilter(roomID model.ID) string {
	return fmt.Sprintf("%s.*.%s", SubjectPrefix, roomID)
}

// PublishBookingEvent publishes a booking event to JetStream and returns its stream sequence.
func (m *StreamManager) PublishBookingEvent(ctx context.Context, event *model.BookingEvent) (uint64, error) {
	subject := EventSubject(event.Type, event.Booking.RoomID)

	data, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := m.client.JetStream().Publish(ctx, subject, data, jetstream.WithMsgID(event.ID))
	if err != nil {
		return 0, fmt.Errorf("failed to publish event: %w", err)
	}

	return ack.Sequence, nil
}

// EventPage is one page of the booking event log.
type EventPage struct {
	Events       []model.BookingEvent `json:"events"`
	LastSequence uint64               `json:"lastSequence"`
	HasMore      bool                 `json:"hasMore"`
}

// GetEvents reads booking events after a stream sequence. An empty roomID reads every room.
func (m *StreamManager) GetEvents(ctx context.Context, roomID model.ID, afterSequence uint64, limit int) (*EventPage, error) {
	js := m.client.JetStream()

	filterSubject := SubjectPrefix + ".>"
	if roomID != "" {
		filterSubject = RoomFilter(roomID)
	}

	consumerConfig := jetstream.ConsumerConfig{
		FilterSubject:     filterSubject,
		AckPolicy:         jetstream.AckNonePolicy,
		DeliverPolicy:     jetstream.DeliverAllPolicy,
		InactiveThreshold: time.Minute,
	}
	if afterSequence > 0 {
		consumerConfig.DeliverPolicy = jetstream.DeliverByStartSequencePolicy
		consumerConfig.OptStartSeq = afterSequence + 1
	}

	consumer, err := js.CreateConsumer(ctx, StreamName, consumerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	batch, err := consumer.Fetch(limit, jetstream.FetchMaxWait(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	page := &EventPage{Events: []model.BookingEvent{}, LastSequence: afterSequence}
	for msg := range batch.Messages() {
		var event model.BookingEvent
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			continue
		}
		if meta, err := msg.Metadata(); err == nil {
			page.LastSequence = meta.Sequence.Stream
		}
		page.Events = append(page.Events, event)
	}

	if err := batch.Error(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("batch error: %w", err)
	}

	page.HasMore = len(page.Events) == limit
	return page, nil
}
