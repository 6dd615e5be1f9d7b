package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skillflip/internal/domain"
)

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) ListForCreator(ctx context.Context, creatorID string) ([]domain.AvailabilityWindow, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityWindow), args.Error(1)
}

func (m *MockAvailabilityRepository) ReplaceForCreator(ctx context.Context, creatorID string, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	args := m.Called(ctx, creatorID, windows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityWindow), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) ListForCreatorBetween(ctx context.Context, creatorID string, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, creatorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Monday 2026-03-02, viewed from the previous Friday.
var (
	testDay   = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	fridayEve = time.Date(2026, time.February, 27, 18, 0, 0, 0, time.UTC)
)

func mondayWindows() []domain.AvailabilityWindow {
	return []domain.AvailabilityWindow{
		{CreatorID: "creator-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
	}
}

func TestSetAvailability_ReplacesSchedule(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)

	expected := []domain.AvailabilityWindow{
		{CreatorID: "creator-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	}
	windows.On("ReplaceForCreator", mock.Anything, "creator-1", expected).
		Return(expected, nil)

	service := NewService(windows, bookings, fixedClock(fridayEve))

	got, err := service.SetAvailability(context.Background(), "creator-1", SetAvailabilityRequest{
		Windows: []WindowInput{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, expected, got)
	windows.AssertExpectations(t)
}

func TestSetAvailability_ValidationErrors(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)
	service := NewService(windows, bookings, fixedClock(fridayEve))

	cases := []WindowInput{
		{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"},
		{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"},
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"},
	}
	for _, in := range cases {
		_, err := service.SetAvailability(context.Background(), "creator-1", SetAvailabilityRequest{
			Windows: []WindowInput{in},
		})
		assert.ErrorIs(t, err, ErrValidation, "window %+v", in)
	}
}

func TestGetAvailableSlots_FutureDayFullyOpen(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)

	windows.On("ListForCreator", mock.Anything, "creator-1").Return(mondayWindows(), nil)
	bookings.On("ListForCreatorBetween", mock.Anything, "creator-1", testDay, testDay.AddDate(0, 0, 1)).
		Return([]domain.Booking{}, nil)

	service := NewService(windows, bookings, fixedClock(fridayEve))

	slots, err := service.GetAvailableSlots(context.Background(), "creator-1", "2026-03-02", "", 60)
	require.NoError(t, err)
	require.Len(t, slots, 5)
	assert.Equal(t, "09:00", slots[0].Start.Format("15:04"))
	assert.Equal(t, "11:00", slots[4].Start.Format("15:04"))
}

func TestGetAvailableSlots_ExcludesBookedInterval(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)

	windows.On("ListForCreator", mock.Anything, "creator-1").Return(mondayWindows(), nil)
	bookings.On("ListForCreatorBetween", mock.Anything, "creator-1", mock.Anything, mock.Anything).
		Return([]domain.Booking{
			{
				CreatorID:   "creator-1",
				SessionDate: testDay.Add(10 * time.Hour),
				Duration:    60,
				Status:      domain.BookingConfirmed,
			},
		}, nil)

	service := NewService(windows, bookings, fixedClock(fridayEve))

	slots, err := service.GetAvailableSlots(context.Background(), "creator-1", "2026-03-02", "", 30)
	require.NoError(t, err)

	got := make([]string, 0, len(slots))
	for _, s := range slots {
		got = append(got, s.Start.Format("15:04"))
	}
	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, got)
}

func TestGetAvailableSlots_CancelledBookingFreesSlot(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)

	windows.On("ListForCreator", mock.Anything, "creator-1").Return(mondayWindows(), nil)
	bookings.On("ListForCreatorBetween", mock.Anything, "creator-1", mock.Anything, mock.Anything).
		Return([]domain.Booking{
			{
				CreatorID:   "creator-1",
				SessionDate: testDay.Add(10 * time.Hour),
				Duration:    60,
				Status:      domain.BookingCancelled,
			},
		}, nil)

	service := NewService(windows, bookings, fixedClock(fridayEve))

	slots, err := service.GetAvailableSlots(context.Background(), "creator-1", "2026-03-02", "", 30)
	require.NoError(t, err)
	assert.Len(t, slots, 6)
}

func TestGetAvailableSlots_PastDateEmpty(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)

	windows.On("ListForCreator", mock.Anything, "creator-1").Return(mondayWindows(), nil)
	bookings.On("ListForCreatorBetween", mock.Anything, "creator-1", mock.Anything, mock.Anything).
		Return([]domain.Booking{}, nil)

	nextWeek := testDay.AddDate(0, 0, 7)
	service := NewService(windows, bookings, fixedClock(nextWeek))

	slots, err := service.GetAvailableSlots(context.Background(), "creator-1", "2026-03-02", "", 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlots_SameDayLeadTime(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)

	windows.On("ListForCreator", mock.Anything, "creator-1").Return(mondayWindows(), nil)
	bookings.On("ListForCreatorBetween", mock.Anything, "creator-1", mock.Anything, mock.Anything).
		Return([]domain.Booking{}, nil)

	// 09:30 on the day itself: anything before 10:30 is inside the buffer.
	now := testDay.Add(9*time.Hour + 30*time.Minute)
	service := NewService(windows, bookings, fixedClock(now))

	slots, err := service.GetAvailableSlots(context.Background(), "creator-1", "2026-03-02", "", 30)
	require.NoError(t, err)

	got := make([]string, 0, len(slots))
	for _, s := range slots {
		got = append(got, s.Start.Format("15:04"))
	}
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, got)
}

func TestGetAvailableSlots_NoWindowsNoRepoCall(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)

	windows.On("ListForCreator", mock.Anything, "creator-1").
		Return([]domain.AvailabilityWindow{}, nil)

	service := NewService(windows, bookings, fixedClock(fridayEve))

	slots, err := service.GetAvailableSlots(context.Background(), "creator-1", "2026-03-02", "", 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
	bookings.AssertNotCalled(t, "ListForCreatorBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetAvailableSlots_BadInput(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)
	service := NewService(windows, bookings, fixedClock(fridayEve))

	_, err := service.GetAvailableSlots(context.Background(), "creator-1", "03/02/2026", "", 60)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.GetAvailableSlots(context.Background(), "creator-1", "2026-03-02", "Mars/Olympus", 60)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.GetAvailableSlots(context.Background(), "creator-1", "2026-03-02", "", 45)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestIsSlotOpen(t *testing.T) {
	windows := new(MockAvailabilityRepository)
	bookings := new(MockBookingReader)

	windows.On("ListForCreator", mock.Anything, "creator-1").Return(mondayWindows(), nil)
	bookings.On("ListForCreatorBetween", mock.Anything, "creator-1", mock.Anything, mock.Anything).
		Return([]domain.Booking{
			{
				CreatorID:   "creator-1",
				SessionDate: testDay.Add(10 * time.Hour),
				Duration:    60,
				Status:      domain.BookingPending,
			},
		}, nil)

	service := NewService(windows, bookings, fixedClock(fridayEve))

	open, err := service.IsSlotOpen(context.Background(), "creator-1", testDay.Add(9*time.Hour), 60)
	require.NoError(t, err)
	assert.True(t, open)

	open, err = service.IsSlotOpen(context.Background(), "creator-1", testDay.Add(10*time.Hour), 60)
	require.NoError(t, err)
	assert.False(t, open)

	// 09:30 with a 60-minute session runs into the 10:00 booking.
	open, err = service.IsSlotOpen(context.Background(), "creator-1", testDay.Add(9*time.Hour+30*time.Minute), 60)
	require.NoError(t, err)
	assert.False(t, open)
}
