package schedule

import (
	"math"
	"time"
)

// Position is the horizontal placement of a booking inside the visible window, in percent.
// Clipped is set when the booking begins before the window or runs past its right edge.
type Position struct {
	LeftPercent  float64
	WidthPercent float64
	Clipped      bool
}

// Layout maps a booking's start and end onto a window spanning [startHour, endHour).
// A booking that starts before the window has its left edge pinned to 0 without its width
// being extended, and the width never runs past the right edge. A booking that starts at or
// after the window end sits at 100 with zero width.
func Layout(start, end time.Time, startHour, endHour int) Position {
	total := float64((endHour - startHour) * 60)
	if total <= 0 {
		return Position{}
	}

	offset := float64((start.Hour()-startHour)*60 + start.Minute())
	duration := end.Sub(start).Minutes()

	left := math.Min(100, math.Max(0, offset/total*100))
	rawWidth := duration / total * 100
	width := math.Max(0, math.Min(100-left, rawWidth))

	return Position{
		LeftPercent:  left,
		WidthPercent: width,
		Clipped:      offset < 0 || width < rawWidth,
	}
}

// CurrentTimePosition places the "now" indicator on the timeline for day. It returns false
// when day is not now's calendar day or now falls outside [startHour, endHour).
func CurrentTimePosition(now, day time.Time, startHour, endHour int) (float64, bool) {
	if !SameDay(now, day) {
		return 0, false
	}
	if now.Hour() < startHour || now.Hour() >= endHour {
		return 0, false
	}

	total := float64((endHour - startHour) * 60)
	minutes := float64((now.Hour()-startHour)*60 + now.Minute())
	return minutes / total * 100, true
}

// HourMarks returns the left offsets of each hour line from startHour to endHour inclusive.
func HourMarks(startHour, endHour int) []float64 {
	hours := endHour - startHour
	if hours <= 0 {
		return nil
	}
	marks := make([]float64, 0, hours+1)
	for i := 0; i <= hours; i++ {
		marks = append(marks, float64(i)/float64(hours)*100)
	}
	return marks
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
