package holiday

import (
	"strings"

	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	StartDate        string   `json:"start_date"` // YYYY-MM-DD
	EndDate          string   `json:"end_date"`   // YYYY-MM-DD
	AppliesToAll     bool     `json:"applies_to_all"`
	Departments      []string `json:"departments,omitempty"`
	Roles            []string `json:"roles,omitempty"`
	AllowAttendance  bool     `json:"allow_attendance"`
	OvertimeEligible bool     `json:"overtime_eligible"`
	Description      *string  `json:"description,omitempty"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !Type(strings.ToLower(r.Type)).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: national, religious, school, semester, custom",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if !r.AppliesToAll && len(r.Departments) == 0 && len(r.Roles) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "applies_to_all",
			Message: "a scoped holiday needs departments or roles",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateHolidayRequest struct {
	ID               string    `json:"-"`
	Name             *string   `json:"name,omitempty"`
	Type             *string   `json:"type,omitempty"`
	StartDate        *string   `json:"start_date,omitempty"`
	EndDate          *string   `json:"end_date,omitempty"`
	AppliesToAll     *bool     `json:"applies_to_all,omitempty"`
	Departments      *[]string `json:"departments,omitempty"`
	Roles            *[]string `json:"roles,omitempty"`
	AllowAttendance  *bool     `json:"allow_attendance,omitempty"`
	OvertimeEligible *bool     `json:"overtime_eligible,omitempty"`
	Description      *string   `json:"description,omitempty"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Type != nil && !Type(strings.ToLower(*r.Type)).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: national, religious, school, semester, custom",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	AppliesToAll     bool     `json:"applies_to_all"`
	Departments      []string `json:"departments,omitempty"`
	Roles            []string `json:"roles,omitempty"`
	AllowAttendance  bool     `json:"allow_attendance"`
	OvertimeEligible bool     `json:"overtime_eligible"`
	Description      *string  `json:"description,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

type HolidayFilter struct {
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Year      *int    `json:"year,omitempty"`
}
