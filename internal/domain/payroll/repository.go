package payroll

import "context"

// PayrollRepository defines data access for payroll records.
type PayrollRepository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)
	Update(ctx context.Context, p Payroll) error
	GetByID(ctx context.Context, id string) (Payroll, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*Payroll, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	DeleteDraft(ctx context.Context, id string) error
}

// PayrollService defines business logic for payroll generation and the
// draft/finalized/paid lifecycle.
type PayrollService interface {
	Generate(ctx context.Context, req *GeneratePayrollRequest) (*GenerateResult, error)
	GetByID(ctx context.Context, id string) (*PayrollResponse, error)
	List(ctx context.Context, filter *PayrollFilter) (*ListPayrollsResponse, error)
	Finalize(ctx context.Context, id string) (*PayrollResponse, error)
	MarkPaid(ctx context.Context, req *MarkPaidRequest) (*PayrollResponse, error)
}
