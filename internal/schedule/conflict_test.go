package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smartroom/booking-platform/internal/model"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func booking(id string, room model.ID, startHour, endHour int) model.Booking {
	return model.Booking{
		ID:        id,
		RoomID:    room,
		Title:     "sync",
		Organizer: "ops",
		StartTime: at(startHour, 0),
		EndTime:   at(endHour, 0),
		Attendees: 2,
	}
}

func candidateOf(b model.Booking) Candidate {
	return Candidate{RoomID: b.RoomID, Start: b.StartTime, End: b.EndTime}
}

func TestHasConflict(t *testing.T) {
	existing := []model.Booking{booking("1", "r1", 9, 10)}

	tests := []struct {
		name      string
		candidate Candidate
		want      bool
	}{
		{"same slot", Candidate{RoomID: "r1", Start: at(9, 0), End: at(10, 0)}, true},
		{"partial overlap at start", Candidate{RoomID: "r1", Start: at(8, 30), End: at(9, 30)}, true},
		{"partial overlap at end", Candidate{RoomID: "r1", Start: at(9, 45), End: at(11, 0)}, true},
		{"contains existing", Candidate{RoomID: "r1", Start: at(8, 0), End: at(12, 0)}, true},
		{"inside existing", Candidate{RoomID: "r1", Start: at(9, 15), End: at(9, 45)}, true},
		{"ends when existing starts", Candidate{RoomID: "r1", Start: at(8, 0), End: at(9, 0)}, false},
		{"starts when existing ends", Candidate{RoomID: "r1", Start: at(10, 0), End: at(11, 0)}, false},
		{"other room", Candidate{RoomID: "r2", Start: at(9, 0), End: at(10, 0)}, false},
		{"excluded self", Candidate{RoomID: "r1", Start: at(9, 30), End: at(10, 30), ExcludeID: "1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(tt.candidate, existing))
		})
	}
}

func TestHasConflictIsSymmetric(t *testing.T) {
	pairs := [][2]model.Booking{
		{booking("a", "r1", 9, 10), booking("b", "r1", 10, 11)},
		{booking("a", "r1", 9, 11), booking("b", "r1", 10, 12)},
		{booking("a", "r1", 8, 12), booking("b", "r1", 9, 10)},
		{booking("a", "r1", 9, 10), booking("b", "r2", 9, 10)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		assert.Equal(t,
			HasConflict(candidateOf(a), []model.Booking{b}),
			HasConflict(candidateOf(b), []model.Booking{a}),
			"%s-%s vs %s-%s", a.StartTime.Format("15:04"), a.EndTime.Format("15:04"),
			b.StartTime.Format("15:04"), b.EndTime.Format("15:04"))
	}
}

func TestFindConflictReturnsCollidingBooking(t *testing.T) {
	existing := []model.Booking{
		booking("1", "r1", 8, 9),
		booking("2", "r2", 9, 10),
		booking("3", "r1", 9, 10),
	}

	got, ok := FindConflict(Candidate{RoomID: "r1", Start: at(9, 30), End: at(10, 30)}, existing)
	assert.True(t, ok)
	assert.Equal(t, "3", got.ID)

	_, ok = FindConflict(Candidate{RoomID: "r1", Start: at(10, 0), End: at(10, 30)}, existing)
	assert.False(t, ok)
}

func TestHasConflictEmptySet(t *testing.T) {
	assert.False(t, HasConflict(Candidate{RoomID: "r1", Start: at(9, 0), End: at(10, 0)}, nil))
}
