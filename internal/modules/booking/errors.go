package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrSkillNotFound           = errors.New("skill not found")
	ErrSkillUnavailable        = errors.New("skill is not accepting bookings")
	ErrUnsupportedSessionType  = errors.New("session type not offered for this skill")
	ErrSlotUnavailable         = errors.New("slot is not available")
	ErrForbidden               = errors.New("forbidden")
	ErrNotFound                = errors.New("booking not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
