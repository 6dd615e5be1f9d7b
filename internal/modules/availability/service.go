package availability

import (
	"context"
	"fmt"
	"time"

	"skillflip/internal/domain"
	"skillflip/internal/modules/pricing"
	"skillflip/internal/scheduling"
)

type Service struct {
	windows  AvailabilityRepository
	bookings BookingReader
	clock    scheduling.Clock
}

func NewService(windows AvailabilityRepository, bookings BookingReader, clock scheduling.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{windows: windows, bookings: bookings, clock: clock}
}

func (s *Service) GetAvailability(ctx context.Context, creatorID string) ([]domain.AvailabilityWindow, error) {
	return s.windows.ListForCreator(ctx, creatorID)
}

// SetAvailability replaces the creator's weekly schedule wholesale. Clients
// always send the complete week; there is no per-window patching.
func (s *Service) SetAvailability(ctx context.Context, creatorID string, req SetAvailabilityRequest) ([]domain.AvailabilityWindow, error) {
	windows := make([]domain.AvailabilityWindow, 0, len(req.Windows))
	for _, in := range req.Windows {
		if err := validateWindow(in); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		windows = append(windows, domain.AvailabilityWindow{
			CreatorID:   creatorID,
			DayOfWeek:   in.DayOfWeek,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			IsAvailable: in.IsAvailable,
		})
	}

	return s.windows.ReplaceForCreator(ctx, creatorID, windows)
}

// GetAvailableSlots computes the open slots for one calendar day, seen from
// the given timezone. dateStr is "2006-01-02" interpreted in that zone;
// durationMinutes defaults to 60 when zero.
func (s *Service) GetAvailableSlots(ctx context.Context, creatorID, dateStr, tzName string, durationMinutes int) ([]scheduling.Slot, error) {
	if durationMinutes == 0 {
		durationMinutes = 60
	}
	if !pricing.DurationSupported(durationMinutes) {
		return nil, ErrInvalidDuration
	}

	loc := time.UTC
	if tzName != "" {
		var err error
		loc, err = time.LoadLocation(tzName)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrValidation, tzName)
		}
	}

	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	windows, err := s.windows.ListForCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	slots, err := scheduling.GenerateSlots(windows, day, time.Duration(durationMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []scheduling.Slot{}, nil
	}

	bookings, err := s.bookings.ListForCreatorBetween(ctx, creatorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	now := s.clock().In(loc)
	open := scheduling.FilterConflicts(slots, day, now, scheduling.BusyIntervals(bookings))
	if open == nil {
		open = []scheduling.Slot{}
	}
	return open, nil
}

// IsSlotOpen re-runs slot generation for the day of the proposed session and
// reports whether that exact start time is still bookable. The booking flow
// uses this before inserting; the storage unique index is the last word.
func (s *Service) IsSlotOpen(ctx context.Context, creatorID string, start time.Time, durationMinutes int) (bool, error) {
	day := scheduling.Midnight(start)

	windows, err := s.windows.ListForCreator(ctx, creatorID)
	if err != nil {
		return false, err
	}

	slots, err := scheduling.GenerateSlots(windows, day, time.Duration(durationMinutes)*time.Minute)
	if err != nil {
		return false, err
	}

	bookings, err := s.bookings.ListForCreatorBetween(ctx, creatorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return false, err
	}

	now := s.clock().In(start.Location())
	open := scheduling.FilterConflicts(slots, day, now, scheduling.BusyIntervals(bookings))
	for _, slot := range open {
		if slot.Start.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}

func validateWindow(in WindowInput) error {
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be 0-6, got %d", in.DayOfWeek)
	}
	start, err := time.Parse("15:04", in.StartTime)
	if err != nil {
		return fmt.Errorf("start_time %q is not HH:MM", in.StartTime)
	}
	end, err := time.Parse("15:04", in.EndTime)
	if err != nil {
		return fmt.Errorf("end_time %q is not HH:MM", in.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("end_time %s must be after start_time %s", in.EndTime, in.StartTime)
	}
	return nil
}
