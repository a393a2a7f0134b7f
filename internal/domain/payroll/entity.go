package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
	StatusPaid      Status = "paid"
)

// Payroll is one employee's salary record for one calendar month. At
// most one row exists per (employee, month, year).
type Payroll struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	BasicSalary     decimal.Decimal
	Allowances      decimal.Decimal
	OvertimeHours   decimal.Decimal
	OvertimePay     decimal.Decimal
	AbsencePenalty  decimal.Decimal
	OtherDeductions decimal.Decimal
	GrossSalary     decimal.Decimal
	TaxAmount       decimal.Decimal
	NetSalary       decimal.Decimal

	WorkDays    int
	PresentDays int
	LateDays    int
	AbsentDays  int
	LeaveDays   int

	Status           Status
	PaymentMethod    *string
	PaymentReference *string
	PaymentDate      *time.Time
	FinalizedAt      *time.Time
	PaidAt           *time.Time
	Notes            *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
