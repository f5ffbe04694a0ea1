package options

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOption matches any UnknownOptionError via errors.Is.
	ErrUnknownOption = errors.New("invalid option specified")
	// ErrDuplicateOption is returned by New when two defaults share a name.
	ErrDuplicateOption = errors.New("duplicate option name")
	// ErrEmptyOptionName is returned by New when a default has no name.
	ErrEmptyOptionName = errors.New("option name must not be empty")
)

// UnknownOptionError reports a reference to a key outside the default set.
type UnknownOptionError struct {
	Key string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownOption.Error(), e.Key)
}

// Is makes errors.Is(err, ErrUnknownOption) hold for every UnknownOptionError.
func (e *UnknownOptionError) Is(target error) bool {
	return target == ErrUnknownOption
}
