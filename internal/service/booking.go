// Package service provides business logic for the room booking service.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/smartroom/booking-platform/internal/model"
	"github.com/smartroom/booking-platform/internal/schedule"
	"github.com/smartroom/booking-platform/pkg/logger"
	"github.com/smartroom/booking-platform/pkg/metrics"
	"github.com/smartroom/booking-platform/pkg/tracing"
)

var tracer = tracing.Tracer("github.com/smartroom/booking-platform/internal/service")

// MaxBookingDuration bounds a single booking.
const MaxBookingDuration = 24 * time.Hour

// RoomLookup resolves rooms by id.
type RoomLookup interface {
	Get(id model.ID) (model.Room, bool)
}

// ConfirmFunc is asked before a booking is removed. Returning false aborts the deletion.
type ConfirmFunc func(booking model.Booking) bool

// BookingService owns the booking set. Every mutation goes through Submit, Delete or Seed.
type BookingService struct {
	rooms  RoomLookup
	events EventPublisher
	logger *logger.Logger
	loc    *time.Location
	now    func() time.Time

	mu       sync.RWMutex
	bookings []model.Booking
	lastID   uint64
}

// NewBookingService creates an empty booking store.
func NewBookingService(rooms RoomLookup, events EventPublisher, loc *time.Location, now func() time.Time, log *logger.Logger) *BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		rooms:  rooms,
		events: events,
		logger: log,
		loc:    loc,
		now:    now,
	}
}

// Seed replaces the booking set without validation. Numeric ids advance the id counter.
func (s *BookingService) Seed(bookings []model.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = append([]model.Booking(nil), bookings...)
	for _, b := range bookings {
		if n, err := strconv.ParseUint(b.ID, 10, 64); err == nil && n > s.lastID {
			s.lastID = n
		}
	}
	metrics.BookingsActive.Set(float64(len(s.bookings)))
}

// List returns a copy of the booking set in insertion order.
func (s *BookingService) List() []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Booking(nil), s.bookings...)
}

// Get retrieves a booking by id.
func (s *BookingService) Get(id string) (model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := schedule.IndexOf(s.bookings, id)
	if idx < 0 {
		return model.Booking{}, ErrNotFound
	}
	return s.bookings[idx], nil
}

// Submit validates a booking form and applies it. In create mode a new booking is appended;
// in edit mode the booking named by form.ID has its title, organizer, times and attendees
// replaced while its id and room stay put. The past-time check applies to create mode only.
func (s *BookingService) Submit(ctx context.Context, form model.BookingForm, mode model.SubmitMode, actor string) (*model.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingService.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("booking.mode", string(mode)))

	booking, err := s.submit(form, mode)
	if err != nil {
		metrics.RecordSubmission(string(mode), submissionResult(err))
		span.RecordError(err)
		s.logger.Info("booking rejected",
			zap.String("mode", string(mode)),
			zap.String("room_id", form.RoomID.String()),
			zap.String("booking_id", form.ID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.RecordSubmission(string(mode), "success")
	s.logger.Info("booking saved",
		zap.String("mode", string(mode)),
		zap.String("booking_id", booking.ID),
		zap.String("room_id", booking.RoomID.String()),
		zap.Time("start", booking.StartTime),
		zap.Duration("duration", booking.Duration()),
	)

	eventType := model.EventTypeBookingCreated
	if mode == model.SubmitModeEdit {
		eventType = model.EventTypeBookingUpdated
	}
	s.publish(ctx, eventType, *booking, actor)

	return booking, nil
}

func (s *BookingService) submit(form model.BookingForm, mode model.SubmitMode) (*model.Booking, error) {
	if mode != model.SubmitModeCreate && mode != model.SubmitModeEdit {
		return nil, fmt.Errorf("unknown submit mode %q", mode)
	}

	start, end, vErr := s.parseForm(form, mode)
	if vErr.HasErrors() {
		return nil, vErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roomID := form.RoomID
	excludeID := ""
	if mode == model.SubmitModeEdit {
		idx := schedule.IndexOf(s.bookings, form.ID)
		if idx < 0 {
			return nil, ErrNotFound
		}
		roomID = s.bookings[idx].RoomID
		excludeID = form.ID
	}

	room, ok := s.rooms.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	if form.Attendees > room.Capacity {
		vErr.add("attendees", fmt.Sprintf("must not exceed room capacity of %d", room.Capacity))
		return nil, vErr
	}

	if mode == model.SubmitModeCreate {
		if now := s.now(); start.Before(now) {
			return nil, &PastTimeError{Start: start, Now: now}
		}
	}

	candidate := schedule.Candidate{RoomID: roomID, Start: start, End: end, ExcludeID: excludeID}
	if other, found := schedule.FindConflict(candidate, s.bookings); found {
		return nil, &OverlapError{RoomID: room.ID, RoomName: room.Name, ConflictingID: other.ID}
	}

	booking := model.Booking{
		ID:        form.ID,
		RoomID:    roomID,
		Title:     strings.TrimSpace(form.Title),
		Organizer: strings.TrimSpace(form.Organizer),
		StartTime: start,
		EndTime:   end,
		Attendees: form.Attendees,
	}

	if mode == model.SubmitModeCreate {
		booking.ID = s.nextIDLocked()
		s.bookings = schedule.Insert(s.bookings, booking)
	} else {
		s.bookings, _ = schedule.Replace(s.bookings, booking)
		booking = s.bookings[schedule.IndexOf(s.bookings, booking.ID)]
	}
	metrics.BookingsActive.Set(float64(len(s.bookings)))

	return &booking, nil
}

// parseForm checks the fields that do not depend on the booking set and resolves the
// absolute start and end of the booking in the service location.
func (s *BookingService) parseForm(form model.BookingForm, mode model.SubmitMode) (time.Time, time.Time, *ValidationError) {
	vErr := &ValidationError{}

	if mode == model.SubmitModeEdit && form.ID == "" {
		vErr.add("id", "is required when editing")
	}
	if mode == model.SubmitModeCreate && form.RoomID == "" {
		vErr.add("roomId", "is required")
	}
	if strings.TrimSpace(form.Title) == "" {
		vErr.add("title", "is required")
	}
	if strings.TrimSpace(form.Organizer) == "" {
		vErr.add("organizer", "is required")
	}
	if form.Attendees < 1 {
		vErr.add("attendees", "must be at least 1")
	}

	// Range-check minutes before converting so huge values cannot wrap.
	var duration time.Duration
	if form.Duration <= 0 {
		vErr.add("duration", "must be positive")
	} else if form.Duration > int(MaxBookingDuration/time.Minute) {
		vErr.add("duration", "must not exceed 24 hours")
	} else {
		duration = time.Duration(form.Duration) * time.Minute
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", form.Date+" "+form.StartTime, s.loc)
	if err != nil {
		vErr.add("startTime", "date must be YYYY-MM-DD and time HH:MM")
	}

	return start, start.Add(duration), vErr
}

// Delete removes the booking with id once confirm approves it. An unknown id is a no-op
// that reports false without consulting confirm.
func (s *BookingService) Delete(ctx context.Context, id string, confirm ConfirmFunc, actor string) (bool, error) {
	ctx, span := tracer.Start(ctx, "BookingService.Delete")
	defer span.End()

	pending, err := s.Get(id)
	if err != nil {
		return false, nil
	}

	if confirm == nil || !confirm(pending) {
		return false, ErrConfirmationRequired
	}

	// The booking may have been edited while confirm ran; report what was actually removed.
	s.mu.Lock()
	idx := schedule.IndexOf(s.bookings, id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	booking := s.bookings[idx]
	s.bookings, _ = schedule.Remove(s.bookings, id)
	remaining := len(s.bookings)
	s.mu.Unlock()

	metrics.BookingDeletionsTotal.Inc()
	metrics.BookingsActive.Set(float64(remaining))
	s.logger.Info("booking deleted", zap.String("booking_id", id))
	s.publish(ctx, model.EventTypeBookingDeleted, booking, actor)

	return true, nil
}

func (s *BookingService) nextIDLocked() string {
	for {
		s.lastID++
		id := strconv.FormatUint(s.lastID, 10)
		if schedule.IndexOf(s.bookings, id) < 0 {
			return id
		}
	}
}

func (s *BookingService) publish(ctx context.Context, eventType model.EventType, booking model.Booking, actor string) {
	event := &model.BookingEvent{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Type:      eventType,
		Booking:   booking,
		Actor:     actor,
		CreatedAt: s.now(),
	}
	if _, err := s.events.PublishBookingEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("event_type", string(eventType)),
			zap.String("booking_id", booking.ID),
			zap.Error(err),
		)
	}
}

func submissionResult(err error) string {
	switch err.(type) {
	case *PastTimeError:
		return "past_time"
	case *OverlapError:
		return "overlap"
	case *ValidationError:
		return "invalid"
	}
	switch err {
	case ErrNotFound:
		return "not_found"
	case ErrRoomNotFound:
		return "unknown_room"
	}
	return "error"
}
