package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusPartial Status = "partial"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusPartial, StatusAbsent:
		return true
	}
	return false
}

// EventType distinguishes the two clock events.
type EventType string

const (
	EventClockIn  EventType = "clock_in"
	EventClockOut EventType = "clock_out"
)

// Attendance is one employee-day. Date is the local calendar day at
// midnight; at most one row exists per employee per day.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	ClockIn           *time.Time
	ClockOut          *time.Time
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	ClockInPhotoPath  *string
	ClockOutPhotoPath *string
	FaceConfidence    *float64
	Status            Status
	LateMinutes       int
	EarlyLeaveMinutes int
	WorkHours         decimal.Decimal
	OvertimeHours     decimal.Decimal
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// PeriodSummary aggregates one employee's records over a payroll period.
type PeriodSummary struct {
	AttendedDays  int
	PresentDays   int
	LateDays      int
	PartialDays   int
	AbsentDays    int
	OvertimeHours decimal.Decimal
}
