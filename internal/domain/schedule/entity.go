package schedule

import "time"

// Schedule is a recurring weekly shift assignment for an employee.
// Times are HH:MM on the named weekday; the interval is half-open, so a
// shift ending 12:00 does not collide with one starting 12:00.
type Schedule struct {
	ID         string
	EmployeeID string
	Weekday    int // 0 Sunday .. 6 Saturday
	StartTime  string
	EndTime    string
	Location   *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}
