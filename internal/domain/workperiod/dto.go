package workperiod

import (
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateWorkPeriodRequest struct {
	Name                 string               `json:"name"`
	Schedule             map[string]DayWindow `json:"schedule"`
	Breaks               []BreakWindow        `json:"breaks,omitempty"`
	LateToleranceMinutes int                  `json:"late_tolerance_minutes"`
	EarlyLeaveMinutes    int                  `json:"early_leave_minutes"`
	OvertimeEnabled      bool                 `json:"overtime_enabled"`
	OvertimeMultiplier   *string              `json:"overtime_multiplier,omitempty"`
	OvertimeMaxHours     int                  `json:"overtime_max_hours,omitempty"`
	Departments          []string             `json:"departments,omitempty"`
	EffectiveFrom        string               `json:"effective_from"` // YYYY-MM-DD
	EffectiveTo          *string              `json:"effective_to,omitempty"`
}

func (r *CreateWorkPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(r.Schedule) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule",
			Message: "schedule must define at least one weekday",
		})
	}
	for day, window := range r.Schedule {
		if !validator.IsInSlice(day, []string{"0", "1", "2", "3", "4", "5", "6"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule",
				Message: "schedule keys must be weekday numbers 0-6",
			})
			continue
		}
		if !window.Enabled {
			continue
		}
		startMin, startOK := ParseMinutes(window.Start)
		endMin, endOK := ParseMinutes(window.End)
		if !startOK || !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule",
				Message: "window times must be in HH:MM format",
			})
		} else if endMin <= startMin {
			errs = append(errs, validator.ValidationError{
				Field:   "schedule",
				Message: "window end must be after window start",
			})
		}
	}

	for _, b := range r.Breaks {
		bs, ok1 := ParseMinutes(b.Start)
		be, ok2 := ParseMinutes(b.End)
		if !ok1 || !ok2 || be <= bs {
			errs = append(errs, validator.ValidationError{
				Field:   "breaks",
				Message: "break windows must be HH:MM ranges with end after start",
			})
			break
		}
	}

	if r.LateToleranceMinutes < 0 || r.EarlyLeaveMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "tolerances",
			Message: "tolerance minutes must not be negative",
		})
	}

	if r.OvertimeMultiplier != nil {
		if d, err := decimal.NewFromString(*r.OvertimeMultiplier); err != nil || d.LessThan(decimal.NewFromInt(1)) {
			errs = append(errs, validator.ValidationError{
				Field:   "overtime_multiplier",
				Message: "overtime_multiplier must be a number >= 1",
			})
		}
	}

	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be in YYYY-MM-DD format",
		})
	}

	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkPeriodRequest struct {
	ID                   string                `json:"-"`
	Name                 *string               `json:"name,omitempty"`
	Schedule             *map[string]DayWindow `json:"schedule,omitempty"`
	Breaks               *[]BreakWindow        `json:"breaks,omitempty"`
	LateToleranceMinutes *int                  `json:"late_tolerance_minutes,omitempty"`
	EarlyLeaveMinutes    *int                  `json:"early_leave_minutes,omitempty"`
	OvertimeEnabled      *bool                 `json:"overtime_enabled,omitempty"`
	OvertimeMultiplier   *string               `json:"overtime_multiplier,omitempty"`
	OvertimeMaxHours     *int                  `json:"overtime_max_hours,omitempty"`
	Departments          *[]string             `json:"departments,omitempty"`
	EffectiveTo          *string               `json:"effective_to,omitempty"`
	IsActive             *bool                 `json:"is_active,omitempty"`
}

func (r *UpdateWorkPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.OvertimeMultiplier != nil {
		if d, err := decimal.NewFromString(*r.OvertimeMultiplier); err != nil || d.LessThan(decimal.NewFromInt(1)) {
			errs = append(errs, validator.ValidationError{
				Field:   "overtime_multiplier",
				Message: "overtime_multiplier must be a number >= 1",
			})
		}
	}

	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_to",
				Message: "effective_to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkPeriodResponse struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	Schedule             map[string]DayWindow `json:"schedule"`
	Breaks               []BreakWindow        `json:"breaks,omitempty"`
	LateToleranceMinutes int                  `json:"late_tolerance_minutes"`
	EarlyLeaveMinutes    int                  `json:"early_leave_minutes"`
	OvertimeEnabled      bool                 `json:"overtime_enabled"`
	OvertimeMultiplier   string               `json:"overtime_multiplier"`
	OvertimeMaxHours     int                  `json:"overtime_max_hours"`
	Departments          []string             `json:"departments,omitempty"`
	EffectiveFrom        string               `json:"effective_from"`
	EffectiveTo          *string              `json:"effective_to,omitempty"`
	IsActive             bool                 `json:"is_active"`
	CreatedAt            string               `json:"created_at"`
	UpdatedAt            string               `json:"updated_at"`
}
