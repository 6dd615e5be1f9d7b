package scheduling

import (
	"fmt"
	"sort"
	"time"

	"skillflip/internal/domain"
)

// SlotGranularity is the spacing between candidate start times.
const SlotGranularity = 30 * time.Minute

// LeadTime is the minimum gap between "now" and a same-day bookable slot.
const LeadTime = 60 * time.Minute

// Clock supplies the current time. Injected so slot filtering is
// deterministic in tests and never reads the wall clock directly.
type Clock func() time.Time

// Slot is a candidate bookable unit. Start is absolute, in the location the
// caller generated for. Slots are derived on demand and never persisted.
type Slot struct {
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"-"`
}

// End is the exclusive end of the slot interval.
func (s Slot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// GenerateSlots expands a creator's weekly availability windows into the
// ordered candidate start times for one calendar day. day must be midnight in
// the viewer's location; sessionLength is the interval each slot would occupy
// if booked. Windows for other weekdays and disabled windows contribute
// nothing. A slot is emitted only if the whole session fits inside the
// window, so no slot ever extends past a window's end.
//
// Overlapping windows describe the same capacity, so duplicate start times
// are collapsed. The result is recomputed identically on every call; there is
// no hidden state.
func GenerateSlots(windows []domain.AvailabilityWindow, day time.Time, sessionLength time.Duration) ([]Slot, error) {
	if sessionLength <= 0 {
		return nil, fmt.Errorf("invalid session length: %s", sessionLength)
	}

	weekday := int(day.Weekday())
	seen := make(map[int64]struct{})
	var slots []Slot

	for _, w := range windows {
		if w.DayOfWeek != weekday || !w.IsAvailable {
			continue
		}

		open, err := atTimeOfDay(day, w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", w.ID, err)
		}
		end, err := atTimeOfDay(day, w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", w.ID, err)
		}
		if !end.After(open) {
			continue
		}

		for cur := open; !cur.Add(sessionLength).After(end); cur = cur.Add(SlotGranularity) {
			key := cur.Unix()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			slots = append(slots, Slot{Start: cur, Duration: sessionLength})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots, nil
}

// atTimeOfDay pins a wall-clock "HH:MM" onto the given day, in that day's
// location.
func atTimeOfDay(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// Midnight truncates t to the start of its calendar day, preserving location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
