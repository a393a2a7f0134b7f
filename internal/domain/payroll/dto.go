package payroll

import (
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
)

type GeneratePayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // empty means all active employees
	Regenerate  bool     `json:"regenerate"`             // replace existing drafts
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}

	if r.PeriodYear < 2000 || r.PeriodYear > time.Now().Year()+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_year",
			Message: "period_year is out of range",
		})
	}

	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee_ids must not contain empty values",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkPaidRequest struct {
	ID               string  `json:"-"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference *string `json:"payment_reference,omitempty"`
	PaymentDate      *string `json:"payment_date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	validMethods := []string{"bank_transfer", "cash", "check"}
	if !validator.IsInSlice(r.PaymentMethod, validMethods) {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_method",
			Message: "payment_method must be one of: bank_transfer, cash, check",
		})
	}

	if r.PaymentDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "payment_date",
				Message: "payment_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PayrollResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	PeriodMonth  int     `json:"period_month"`
	PeriodYear   int     `json:"period_year"`

	BasicSalary     string `json:"basic_salary"`
	Allowances      string `json:"allowances"`
	OvertimeHours   string `json:"overtime_hours"`
	OvertimePay     string `json:"overtime_pay"`
	AbsencePenalty  string `json:"absence_penalty"`
	OtherDeductions string `json:"other_deductions"`
	GrossSalary     string `json:"gross_salary"`
	TaxAmount       string `json:"tax_amount"`
	NetSalary       string `json:"net_salary"`

	WorkDays    int `json:"work_days"`
	PresentDays int `json:"present_days"`
	LateDays    int `json:"late_days"`
	AbsentDays  int `json:"absent_days"`
	LeaveDays   int `json:"leave_days"`

	Status           string  `json:"status"`
	PaymentMethod    *string `json:"payment_method,omitempty"`
	PaymentReference *string `json:"payment_reference,omitempty"`
	PaymentDate      *string `json:"payment_date,omitempty"`
	FinalizedAt      *string `json:"finalized_at,omitempty"`
	PaidAt           *string `json:"paid_at,omitempty"`
	Notes            *string `json:"notes,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type PayrollFilter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
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

	if f.PeriodMonth != nil && (*f.PeriodMonth < 1 || *f.PeriodMonth > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}

	if f.Status != nil {
		validStatuses := []string{string(StatusDraft), string(StatusFinalized), string(StatusPaid)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: draft, finalized, paid",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListPayrollsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payrolls   []PayrollResponse `json:"payrolls"`
}

// GenerateResult summarizes a generation run.
type GenerateResult struct {
	Generated int               `json:"generated"`
	Skipped   int               `json:"skipped"`
	Errors    []GenerateError   `json:"errors,omitempty"`
	Payrolls  []PayrollResponse `json:"payrolls"`
}

type GenerateError struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}
