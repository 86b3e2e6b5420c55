package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrDurationOutOfRange is wrapped by the duration checks below.
var ErrDurationOutOfRange = errors.New("duration out of range")

// ValidatePositiveDuration rejects zero and negative timeouts and intervals.
func ValidatePositiveDuration(d time.Duration) error {
	if d > 0 {
		return nil
	}
	return fmt.Errorf("%w: %v is not positive", ErrDurationOutOfRange, d)
}

// ValidateDurationRange checks lo <= d <= hi.
func ValidateDurationRange(d, lo, hi time.Duration) error {
	switch {
	case lo > hi:
		return fmt.Errorf("empty duration range [%v, %v]", lo, hi)
	case d < lo, d > hi:
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrDurationOutOfRange, d, lo, hi)
	}
	return nil
}
