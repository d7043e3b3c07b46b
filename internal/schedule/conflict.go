// Package schedule holds the interval arithmetic behind booking validation and the day timeline.
package schedule

import (
	"time"

	"github.com/smartroom/booking-platform/internal/model"
)

// Candidate is a proposed time range for a room. ExcludeID names a booking that must not be
// compared against, used when a booking is being edited.
type Candidate struct {
	RoomID    model.ID
	Start     time.Time
	End       time.Time
	ExcludeID string
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect. Touching ends do not.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict reports whether the candidate collides with any booking for the same room.
func HasConflict(candidate Candidate, existing []model.Booking) bool {
	_, found := FindConflict(candidate, existing)
	return found
}

// FindConflict returns the first booking the candidate collides with.
func FindConflict(candidate Candidate, existing []model.Booking) (model.Booking, bool) {
	for _, other := range existing {
		if candidate.ExcludeID != "" && other.ID == candidate.ExcludeID {
			continue
		}
		if other.RoomID != candidate.RoomID {
			continue
		}
		if Overlaps(candidate.Start, candidate.End, other.StartTime, other.EndTime) {
			return other, true
		}
	}
	return model.Booking{}, false
}
