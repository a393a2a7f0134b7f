package employee

import (
	"strings"

	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	Department   string  `json:"department"`
	Position     string  `json:"position"`
	BasicSalary  *string `json:"basic_salary,omitempty"`
	Allowances   *string `json:"allowances,omitempty"`
	HireDate     string  `json:"hire_date"` // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must match EMP-NNNN",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !Role(strings.ToLower(r.Role)).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, manager, employee",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if r.BasicSalary != nil {
		if d, err := decimal.NewFromString(*r.BasicSalary); err != nil || d.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "basic_salary",
				Message: "basic_salary must be a non-negative number",
			})
		}
	}

	if r.Allowances != nil {
		if d, err := decimal.NewFromString(*r.Allowances); err != nil || d.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "allowances",
				Message: "allowances must be a non-negative number",
			})
		}
	}

	if _, valid := validator.IsValidDate(r.HireDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID          string  `json:"-"`
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Role        *string `json:"role,omitempty"`
	Department  *string `json:"department,omitempty"`
	Position    *string `json:"position,omitempty"`
	BasicSalary *string `json:"basic_salary,omitempty"`
	Allowances  *string `json:"allowances,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.Role != nil && !Role(strings.ToLower(*r.Role)).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, manager, employee",
		})
	}

	if r.BasicSalary != nil {
		if d, err := decimal.NewFromString(*r.BasicSalary); err != nil || d.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "basic_salary",
				Message: "basic_salary must be a non-negative number",
			})
		}
	}

	if r.Allowances != nil {
		if d, err := decimal.NewFromString(*r.Allowances); err != nil || d.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "allowances",
				Message: "allowances must be a non-negative number",
			})
		}
	}

	if r.Status != nil {
		validStatuses := []string{string(StatusActive), string(StatusInactive), string(StatusResigned)}
		if !validator.IsInSlice(*r.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, inactive, resigned",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeCode   string `json:"employee_code"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	BasicSalary    string `json:"basic_salary"`
	Allowances     string `json:"allowances"`
	FaceRegistered bool   `json:"face_registered"`
	Status         string `json:"status"`
	HireDate       string `json:"hire_date"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type EmployeeFilter struct {
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	Search     *string `json:"search,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
