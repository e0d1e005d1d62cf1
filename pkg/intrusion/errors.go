package intrusion

import (
	"errors"
	"fmt"
)

// ErrZeroTotalVolume is returned when the three volume components sum to zero and no
// intrusion percentage can be formed
var ErrZeroTotalVolume = errors.New("total volume is zero; intrusion percentage is undefined")

// InsufficientDataError is returned when a profile has no saline-wedge observations
type InsufficientDataError struct {
	Profile string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: no saline wedge detected; every wedge elevation is empty", e.Profile)
}

// NoExtractionPointError is returned when no station of a profile is flagged as the
// extraction well
type NoExtractionPointError struct {
	Profile string
}

func (e *NoExtractionPointError) Error() string {
	return fmt.Sprintf("%s: no station is flagged as the extraction well", e.Profile)
}

// ConditionError ties an analysis failure to the condition it happened in. A failure
// in either condition aborts the whole comparison.
type ConditionError struct {
	Condition Condition
	Err       error
}

func (e *ConditionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Condition, e.Err)
}

func (e *ConditionError) Unwrap() error {
	return e.Err
}
