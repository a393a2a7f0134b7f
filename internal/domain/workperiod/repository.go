package workperiod

import (
	"context"
	"time"
)

// WorkPeriodRepository defines data access for work periods.
type WorkPeriodRepository interface {
	Create(ctx context.Context, wp WorkPeriod) (WorkPeriod, error)
	Update(ctx context.Context, wp WorkPeriod) error
	GetByID(ctx context.Context, id string) (WorkPeriod, error)
	List(ctx context.Context) ([]WorkPeriod, error)
	Delete(ctx context.Context, id string) error

	// ListActiveOn returns periods whose effective range covers date.
	ListActiveOn(ctx context.Context, date time.Time) ([]WorkPeriod, error)
}

// WorkPeriodService defines business logic for work calendars.
type WorkPeriodService interface {
	Create(ctx context.Context, req *CreateWorkPeriodRequest) (*WorkPeriodResponse, error)
	Update(ctx context.Context, req *UpdateWorkPeriodRequest) (*WorkPeriodResponse, error)
	GetByID(ctx context.Context, id string) (*WorkPeriodResponse, error)
	List(ctx context.Context) ([]WorkPeriodResponse, error)
	Delete(ctx context.Context, id string) error

	// Resolve picks the applicable period for a department on a date.
	// Returns ErrNoApplicablePeriod when nothing matches; callers fall
	// back to the configured default window.
	Resolve(ctx context.Context, department string, date time.Time) (*WorkPeriod, error)
}
