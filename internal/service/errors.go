package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/smartroom/booking-platform/internal/model"
)

var (
	// ErrNotFound is returned when the requested booking does not exist.
	ErrNotFound = errors.New("booking not found")
	// ErrRoomNotFound is returned when a booking names a room absent from the directory.
	ErrRoomNotFound = errors.New("room not found")
	// ErrConfirmationRequired is returned when a deletion was not confirmed.
	ErrConfirmationRequired = errors.New("deletion requires confirmation")
)

// PastTimeError rejects a new booking whose start lies before the current moment.
type PastTimeError struct {
	Start time.Time
	Now   time.Time
}

func (e *PastTimeError) Error() string {
	return fmt.Sprintf("cannot book in the past: start %s is before %s",
		e.Start.Format(time.RFC3339), e.Now.Format(time.RFC3339))
}

// OverlapError rejects a booking that collides with another booking on the same room.
type OverlapError struct {
	RoomID        model.ID
	RoomName      string
	ConflictingID string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("room %q is already booked in this time slot", e.RoomName)
}

// FetchError reports that the room list could not be loaded.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "room list unavailable: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RecommendationError reports a failed or unparseable assistant call.
type RecommendationError struct {
	Stage string
	Err   error
}

func (e *RecommendationError) Error() string {
	return fmt.Sprintf("recommendation %s failed: %v", e.Stage, e.Err)
}

func (e *RecommendationError) Unwrap() error {
	return e.Err
}

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v.FieldErrors[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
