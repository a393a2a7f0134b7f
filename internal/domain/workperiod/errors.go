package workperiod

import "errors"

var (
	ErrWorkPeriodNotFound = errors.New("work period not found")
	ErrNoApplicablePeriod = errors.New("no work period applies to this employee and date")
)
