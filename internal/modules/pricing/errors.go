package pricing

import "errors"

var (
	ErrInvalidDuration = errors.New("unsupported session duration")
	ErrInvalidRate     = errors.New("invalid hourly rate")
)
