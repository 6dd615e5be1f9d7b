package domain

// AvailabilityWindow is one recurring weekly window during which a creator
// accepts bookings. Times are wall-clock "HH:MM" with no date or zone
// attached; they are interpreted in the viewer's location when slots are
// generated.
type AvailabilityWindow struct {
	ID          int64  `json:"id"`
	CreatorID   string `json:"creator_id"`
	DayOfWeek   int    `json:"day_of_week"` // 0 = Sunday
	StartTime   string `json:"start_time"`  // "HH:MM"
	EndTime     string `json:"end_time"`    // "HH:MM"
	IsAvailable bool   `json:"is_available"`
}
