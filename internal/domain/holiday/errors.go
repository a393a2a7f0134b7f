package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayOverlaps = errors.New("holiday overlaps an existing holiday of the same type")
)
