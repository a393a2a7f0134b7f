package payroll

import "errors"

var (
	ErrPayrollNotFound     = errors.New("payroll record not found")
	ErrPayrollPeriodExists = errors.New("payroll record already exists for this period")
	ErrPayrollNotDraft     = errors.New("payroll record is no longer a draft")
	ErrPayrollNotFinalized = errors.New("payroll record must be finalized before payment")
	ErrPayrollImmutable    = errors.New("paid payroll records cannot be modified")
)
