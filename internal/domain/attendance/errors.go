package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn = errors.New("you have already clocked in today")

	// Clock-out errors
	ErrNotClockedIn      = errors.New("you have not clocked in today")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")

	// Identity gate errors
	ErrIdentityMismatch = errors.New("recognized face does not belong to the authenticated employee")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidEventType   = errors.New("attendance event type must be 'clock_in' or 'clock_out'")
	ErrHolidayToday       = errors.New("attendance is not allowed on this holiday")
)
