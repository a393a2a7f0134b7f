package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access for holidays.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Update(ctx context.Context, h Holiday) error
	GetByID(ctx context.Context, id string) (Holiday, error)
	List(ctx context.Context, filter HolidayFilter) ([]Holiday, error)
	Delete(ctx context.Context, id string) error

	// ListBetween returns holidays whose range intersects [start, end].
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
}

// HolidayService defines business logic for holiday management.
type HolidayService interface {
	Create(ctx context.Context, req *CreateHolidayRequest) (*HolidayResponse, error)
	Update(ctx context.Context, req *UpdateHolidayRequest) (*HolidayResponse, error)
	GetByID(ctx context.Context, id string) (*HolidayResponse, error)
	List(ctx context.Context, filter *HolidayFilter) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error

	// IsNonWorkingDay reports whether date is a holiday for the employee
	// scope that blocks regular attendance.
	IsNonWorkingDay(ctx context.Context, date time.Time, department, role string) (bool, error)
}
