package inference

import "errors"

var (
	// ErrInvalidOptionValue is returned when an option holds a value inference cannot use.
	ErrInvalidOptionValue = errors.New("option holds an invalid value")
)
