package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillflip/internal/domain"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC)
}

func slotsFor(t *testing.T, start, end string, length time.Duration) []Slot {
	t.Helper()
	slots, err := GenerateSlots([]domain.AvailabilityWindow{window(1, start, end)}, monday, length)
	require.NoError(t, err)
	return slots
}

func TestBusyIntervals_SkipsCancelledAndRefunded(t *testing.T) {
	bookings := []domain.Booking{
		{SessionDate: at(10, 0), Duration: 60, Status: domain.BookingConfirmed},
		{SessionDate: at(11, 0), Duration: 60, Status: domain.BookingCancelled},
		{SessionDate: at(12, 0), Duration: 30, Status: domain.BookingRefunded},
		{SessionDate: at(13, 0), Duration: 30, Status: domain.BookingPending},
	}

	busy := BusyIntervals(bookings)
	require.Len(t, busy, 2)
	assert.Equal(t, at(10, 0), busy[0].Start)
	assert.Equal(t, at(11, 0), busy[0].End)
	assert.Equal(t, at(13, 0), busy[1].Start)
	assert.Equal(t, at(13, 30), busy[1].End)
}

func TestFilterConflicts_RemovesOverlaps(t *testing.T) {
	slots := slotsFor(t, "09:00", "12:00", 30*time.Minute)
	busy := []BusyInterval{{Start: at(10, 0), End: at(11, 0)}}

	now := at(8, 0).AddDate(0, 0, -1) // day before, no lead-time cutoff
	open := FilterConflicts(slots, monday, now, busy)

	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, starts(open))
}

func TestFilterConflicts_LongSlotOverlapsByTail(t *testing.T) {
	slots := slotsFor(t, "09:00", "12:00", 60*time.Minute)
	busy := []BusyInterval{{Start: at(10, 0), End: at(11, 0)}}

	now := monday.AddDate(0, 0, -1)
	open := FilterConflicts(slots, monday, now, busy)

	// A 60-minute slot at 09:30 runs into the 10:00 booking.
	assert.Equal(t, []string{"09:00", "11:00"}, starts(open))
}

func TestFilterConflicts_BackToBackIsNotAConflict(t *testing.T) {
	slots := slotsFor(t, "09:00", "12:00", 60*time.Minute)
	busy := []BusyInterval{{Start: at(10, 0), End: at(11, 0)}}

	now := monday.AddDate(0, 0, -1)
	open := FilterConflicts(slots, monday, now, busy)

	// Ending at exactly 10:00 or starting at exactly 11:00 is fine.
	assert.Contains(t, starts(open), "09:00")
	assert.Contains(t, starts(open), "11:00")
}

func TestFilterConflicts_PastDayDropsEverything(t *testing.T) {
	slots := slotsFor(t, "09:00", "12:00", 30*time.Minute)

	now := monday.AddDate(0, 0, 1) // midnight of the next day
	open := FilterConflicts(slots, monday, now, nil)
	assert.Empty(t, open)

	now = monday.AddDate(0, 0, 3)
	open = FilterConflicts(slots, monday, now, nil)
	assert.Empty(t, open)
}

func TestFilterConflicts_SameDayLeadTime(t *testing.T) {
	slots := slotsFor(t, "09:00", "12:00", 30*time.Minute)

	now := at(9, 15)
	open := FilterConflicts(slots, monday, now, nil)

	// 09:00 and 09:30 and 10:00 are within the hour; 10:15 would be the
	// cutoff, so 10:30 onward survives.
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, starts(open))
}

func TestFilterConflicts_LeadTimeBoundaryIsBookable(t *testing.T) {
	slots := slotsFor(t, "09:00", "12:00", 30*time.Minute)

	now := at(9, 0)
	open := FilterConflicts(slots, monday, now, nil)

	// A slot starting exactly one hour from now stays.
	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, starts(open))
}

func TestFilterConflicts_FutureDayHasNoCutoff(t *testing.T) {
	slots := slotsFor(t, "09:00", "12:00", 30*time.Minute)

	now := at(23, 0).AddDate(0, 0, -1) // late the previous evening
	open := FilterConflicts(slots, monday, now, nil)
	assert.Len(t, open, len(slots))
}

func TestFilterConflicts_PreservesInput(t *testing.T) {
	slots := slotsFor(t, "09:00", "10:00", 30*time.Minute)
	busy := []BusyInterval{{Start: at(9, 0), End: at(9, 30)}}

	now := monday.AddDate(0, 0, -1)
	_ = FilterConflicts(slots, monday, now, busy)

	assert.Equal(t, []string{"09:00", "09:30"}, starts(slots))
}

func TestOverlaps(t *testing.T) {
	b := BusyInterval{Start: at(10, 0), End: at(11, 0)}

	assert.True(t, b.Overlaps(at(10, 30), at(11, 30)))
	assert.True(t, b.Overlaps(at(9, 30), at(10, 30)))
	assert.True(t, b.Overlaps(at(9, 0), at(12, 0)))
	assert.True(t, b.Overlaps(at(10, 15), at(10, 45)))
	assert.False(t, b.Overlaps(at(9, 0), at(10, 0)))
	assert.False(t, b.Overlaps(at(11, 0), at(12, 0)))
}
