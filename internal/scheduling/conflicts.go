package scheduling

import (
	"time"

	"skillflip/internal/domain"
)

// BusyInterval is a half-open [Start, End) span already claimed by a booking.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the interval intersects [start, end).
// Back-to-back intervals sharing only a boundary instant do not overlap.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && b.Start.Before(end)
}

// BusyIntervals projects bookings onto the intervals they occupy. Cancelled
// and refunded bookings release their slots and are skipped.
func BusyIntervals(bookings []domain.Booking) []BusyInterval {
	intervals := make([]BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		if !b.Status.Blocks() {
			continue
		}
		intervals = append(intervals, BusyInterval{Start: b.SessionDate, End: b.SessionEnd()})
	}
	return intervals
}

// FilterConflicts removes slots that cannot actually be booked: any slot on a
// day fully in the past, same-day slots starting less than LeadTime from now,
// and slots whose interval intersects a busy interval. day must be midnight
// in the same location the slots were generated in. The input order is
// preserved; the input slice is not modified.
func FilterConflicts(slots []Slot, day, now time.Time, busy []BusyInterval) []Slot {
	nextDay := day.AddDate(0, 0, 1)
	if !nextDay.After(now) {
		// The whole day is behind us.
		return nil
	}

	var cutoff time.Time
	if now.After(day) || now.Equal(day) {
		// Same-day view: leave a buffer so nobody books a session that
		// starts in five minutes.
		cutoff = now.Add(LeadTime)
	}

	open := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if !cutoff.IsZero() && s.Start.Before(cutoff) {
			continue
		}
		if conflicts(s, busy) {
			continue
		}
		open = append(open, s)
	}
	return open
}

func conflicts(s Slot, busy []BusyInterval) bool {
	for _, b := range busy {
		if b.Overlaps(s.Start, s.End()) {
			return true
		}
	}
	return false
}
