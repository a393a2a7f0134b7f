package schedule

import (
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	EmployeeID string  `json:"employee_id"`
	Weekday    int     `json:"weekday"`
	StartTime  string  `json:"start_time"` // HH:MM
	EndTime    string  `json:"end_time"`   // HH:MM
	Location   *string `json:"location,omitempty"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Weekday < 0 || r.Weekday > 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekday",
			Message: "weekday must be between 0 (Sunday) and 6 (Saturday)",
		})
	}

	startOK := validator.IsValidTimeOfDay(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	endOK := validator.IsValidTimeOfDay(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if startOK && endOK {
		start, _ := time.Parse("15:04", r.StartTime)
		end, _ := time.Parse("15:04", r.EndTime)
		if !end.After(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateScheduleRequest struct {
	ID        string  `json:"-"`
	Weekday   *int    `json:"weekday,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Location  *string `json:"location,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Weekday != nil && (*r.Weekday < 0 || *r.Weekday > 6) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekday",
			Message: "weekday must be between 0 (Sunday) and 6 (Saturday)",
		})
	}

	if r.StartTime != nil && !validator.IsValidTimeOfDay(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != nil && !validator.IsValidTimeOfDay(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Weekday      int     `json:"weekday"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Location     *string `json:"location,omitempty"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ScheduleFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Weekday    *int    `json:"weekday,omitempty"`
	ActiveOnly bool    `json:"active_only"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ScheduleFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Weekday != nil && (*f.Weekday < 0 || *f.Weekday > 6) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekday",
			Message: "weekday must be between 0 (Sunday) and 6 (Saturday)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListSchedulesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Schedules  []ScheduleResponse `json:"schedules"`
}

// Conflict is one detected overlap between two active schedules.
type Conflict struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Weekday      int     `json:"weekday"`
	ScheduleA    string  `json:"schedule_a"`
	ScheduleB    string  `json:"schedule_b"`
	RangeA       string  `json:"range_a"`
	RangeB       string  `json:"range_b"`
}

type ConflictReportResponse struct {
	Total     int        `json:"total"`
	Conflicts []Conflict `json:"conflicts"`
}
