package availability

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrInvalidDuration = errors.New("unsupported session duration")
)
