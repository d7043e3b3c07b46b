package model

import (
	"time"
)

// TimelineBooking is a booking positioned on the day timeline.
type TimelineBooking struct {
	Booking      Booking `json:"booking"`
	LeftPercent  float64 `json:"leftPercent"`
	WidthPercent float64 `json:"widthPercent"`
	Clipped      bool    `json:"clipped,omitempty"`
}

// TimelineRow holds one room's bookings for the displayed day.
type TimelineRow struct {
	Room     Room              `json:"room"`
	Bookings []TimelineBooking `json:"bookings"`
}

// CalendarDay is the day view of the timeline.
type CalendarDay struct {
	Date             string        `json:"date"`
	VisibleStartHour int           `json:"visibleStartHour"`
	VisibleEndHour   int           `json:"visibleEndHour"`
	HourMarks        []float64     `json:"hourMarks"`
	CurrentTime      *float64      `json:"currentTimePercent"`
	Rows             []TimelineRow `json:"rows"`
}

// TimeIndicatorEvent is streamed whenever the current-time indicator is recomputed.
type TimeIndicatorEvent struct {
	Date      string    `json:"date"`
	Percent   *float64  `json:"percent"`
	Timestamp time.Time `json:"timestamp"`
}
