package schedule

import (
	"errors"
	"fmt"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// ConflictError reports an overlap with an existing active schedule.
type ConflictError struct {
	ConflictingID string
	Weekday       int
	StartTime     string
	EndTime       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule overlaps existing schedule %s (%s-%s)", e.ConflictingID, e.StartTime, e.EndTime)
}
