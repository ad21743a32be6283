package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks input the optimizer refuses to run on
	// (negative capital or price, malformed numbers, bad records).
	ErrInvalidInput = errors.New("invalid input")

	// ErrTableTooLarge is returned when the DP table would exceed the configured cell ceiling.
	// It wraps ErrInvalidInput so callers can treat it as a validation failure.
	ErrTableTooLarge = fmt.Errorf("%w: dp table too large", ErrInvalidInput)

	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("not found")
)
