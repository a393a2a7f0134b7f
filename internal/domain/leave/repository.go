package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, lv Leave) (Leave, error)
	Update(ctx context.Context, lv Leave) error
	GetByID(ctx context.Context, id string) (Leave, error)
	GetByIDs(ctx context.Context, ids []string) ([]Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]Leave, int64, error)
	Delete(ctx context.Context, id string) error

	// HasOverlap reports whether a non-rejected request of the employee
	// intersects [start, end], both endpoints inclusive. excludeID skips
	// the request being updated.
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)

	// ApprovedDaysBetween counts approved leave days of the employee
	// falling inside [start, end].
	ApprovedDaysBetween(ctx context.Context, employeeID string, start, end time.Time) (int, error)

	// EmployeeIDsOnApprovedLeave supports the day-close job.
	EmployeeIDsOnApprovedLeave(ctx context.Context, date time.Time) ([]string, error)
}

// LeaveService defines business logic for leave requests.
type LeaveService interface {
	Create(ctx context.Context, req *CreateLeaveRequest) (*LeaveResponse, error)
	Update(ctx context.Context, req *UpdateLeaveRequest) (*LeaveResponse, error)
	GetByID(ctx context.Context, id string) (*LeaveResponse, error)
	List(ctx context.Context, filter *LeaveFilter) (*ListLeavesResponse, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, req *ReviewLeaveRequest) (*LeaveResponse, error)
	Reject(ctx context.Context, req *ReviewLeaveRequest) (*LeaveResponse, error)
}
