package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	Update(ctx context.Context, att Attendance) error
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when no record exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Delete(ctx context.Context, id string) error

	// Summarize aggregates statuses and overtime for a payroll period,
	// date range inclusive on both ends.
	Summarize(ctx context.Context, employeeID string, start, end time.Time) (PeriodSummary, error)

	// EmployeeIDsWithRecordOn supports the day-close job.
	EmployeeIDsWithRecordOn(ctx context.Context, date time.Time) ([]string, error)
}

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	ClockEvent(ctx context.Context, req *ClockEventRequest) (*AttendanceResponse, error)
	TodayStatus(ctx context.Context) (*TodayStatusResponse, error)
	List(ctx context.Context, filter *AttendanceFilter) (*ListAttendanceResponse, error)
	GetByID(ctx context.Context, id string) (*AttendanceResponse, error)
	Update(ctx context.Context, req *UpdateAttendanceRequest) (*AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}
