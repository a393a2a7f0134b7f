package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAttendanceClockIn  NotificationType = "attendance_clock_in"
	TypeAttendanceClockOut NotificationType = "attendance_clock_out"
	TypeAttendanceAbsent   NotificationType = "attendance_absent"
	TypeLeaveRequest       NotificationType = "leave_request"
	TypeLeaveApproved      NotificationType = "leave_approved"
	TypeLeaveRejected      NotificationType = "leave_rejected"
	TypePayrollGenerated   NotificationType = "payroll_generated"
	TypePayrollPaid        NotificationType = "payroll_paid"
	TypeScheduleUpdated    NotificationType = "schedule_updated"
)

// ReferenceKind names the aggregate a notification points at.
type ReferenceKind string

const (
	RefLeave      ReferenceKind = "leave"
	RefPayroll    ReferenceKind = "payroll"
	RefAttendance ReferenceKind = "attendance"
	RefSchedule   ReferenceKind = "schedule"
)

// Reference ties a notification to exactly one record of a known kind.
type Reference struct {
	Kind ReferenceKind `json:"kind"`
	ID   string        `json:"id"`
}

// Notification is an in-app notification delivered over list endpoints
// and the SSE stream.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Reference   *Reference
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
