package event

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("event not found")
	ErrEventInactive     = errors.New("event is not open for registration")
	ErrEventFull         = errors.New("event is at capacity")
	ErrAlreadyRegistered = errors.New("already registered for this event")
)
