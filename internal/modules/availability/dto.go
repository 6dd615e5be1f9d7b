package availability

// WindowInput is one weekly window in a schedule update.
type WindowInput struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable bool   `json:"is_available"`
}

// SetAvailabilityRequest replaces the creator's whole weekly schedule.
type SetAvailabilityRequest struct {
	Windows []WindowInput `json:"windows" binding:"required"`
}

// SlotResponse is one bookable slot as returned to clients. Times are
// RFC 3339 in the requested timezone.
type SlotResponse struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
}
