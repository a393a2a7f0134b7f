package schedule

import "context"

// ScheduleRepository defines data access for weekly schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, s Schedule) (Schedule, error)
	Update(ctx context.Context, s Schedule) error
	GetByID(ctx context.Context, id string) (Schedule, error)
	List(ctx context.Context, filter ScheduleFilter) ([]Schedule, int64, error)
	Delete(ctx context.Context, id string) error

	// ListActiveForEmployeeWeekday returns the employee's active
	// schedules on a weekday, excluding excludeID when non-empty.
	ListActiveForEmployeeWeekday(ctx context.Context, employeeID string, weekday int, excludeID string) ([]Schedule, error)

	// ListAllActive feeds the conflict report.
	ListAllActive(ctx context.Context) ([]Schedule, error)
}

// ScheduleService defines business logic for schedules.
type ScheduleService interface {
	Create(ctx context.Context, req *CreateScheduleRequest) (*ScheduleResponse, error)
	Update(ctx context.Context, req *UpdateScheduleRequest) (*ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*ScheduleResponse, error)
	List(ctx context.Context, filter *ScheduleFilter) (*ListSchedulesResponse, error)
	Delete(ctx context.Context, id string) error
	ConflictReport(ctx context.Context) (*ConflictReportResponse, error)
}
