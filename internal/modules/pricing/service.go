package pricing

import "math"

// PlatformFeeRate is the marketplace's cut of every booking.
const PlatformFeeRate = 0.25

// SupportedDurations are the session lengths, in minutes, a booking may use.
var SupportedDurations = []int{30, 60, 90, 120}

// Quote is the money breakdown for one booking. The three amounts always
// reconcile exactly: PlatformFee + CreatorEarnings == TotalAmount.
type Quote struct {
	TotalAmount     float64 `json:"total_amount"`
	PlatformFee     float64 `json:"platform_fee"`
	CreatorEarnings float64 `json:"creator_earnings"`
	DurationMinutes int     `json:"duration_minutes"`
	HourlyRate      float64 `json:"hourly_rate"`
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Quote prices a session of durationMinutes at the given hourly rate. Both
// the total and the fee are rounded to cents independently; earnings are the
// difference of the rounded figures so the breakdown sums exactly even when
// the unrounded split would not.
func (s *Service) Quote(hourlyRate float64, durationMinutes int) (*Quote, error) {
	if hourlyRate <= 0 || math.IsNaN(hourlyRate) || math.IsInf(hourlyRate, 0) {
		return nil, ErrInvalidRate
	}
	if !DurationSupported(durationMinutes) {
		return nil, ErrInvalidDuration
	}

	total := roundCents(hourlyRate * float64(durationMinutes) / 60)
	fee := roundCents(total * PlatformFeeRate)

	return &Quote{
		TotalAmount:     total,
		PlatformFee:     fee,
		CreatorEarnings: roundCents(total - fee),
		DurationMinutes: durationMinutes,
		HourlyRate:      hourlyRate,
	}, nil
}

// DurationSupported reports whether a session of the given length can be
// booked at all.
func DurationSupported(minutes int) bool {
	for _, d := range SupportedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
