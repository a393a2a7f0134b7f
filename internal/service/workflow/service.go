package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/leave"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/payroll"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
)

// ItemError attributes a failure to one item of a batch.
type ItemError struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchValidationError rejects a whole batch before anything runs.
// Nothing has been mutated when this error is returned.
type BatchValidationError struct {
	Items []ItemError
}

func (e *BatchValidationError) Error() string {
	reasons := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		reasons = append(reasons, fmt.Sprintf("%s: %s", item.ID, item.Reason))
	}
	return "batch validation failed: " + strings.Join(reasons, "; ")
}

// BulkResult summarizes the execution phase of a batch.
type BulkResult struct {
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Errors    []ItemError `json:"errors,omitempty"`
}

type BulkApproveLeavesRequest struct {
	LeaveIDs []string `json:"leave_ids"`
	Notes    *string  `json:"notes,omitempty"`
}

func (r *BulkApproveLeavesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.LeaveIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_ids",
			Message: "leave_ids must not be empty",
		})
	}
	for _, id := range r.LeaveIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_ids",
				Message: "leave_ids must not contain empty values",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type leaveApprover interface {
	Approve(ctx context.Context, req *leave.ReviewLeaveRequest) (*leave.LeaveResponse, error)
}

type leaveReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]leave.Leave, error)
}

type payrollGenerator interface {
	Generate(ctx context.Context, req *payroll.GeneratePayrollRequest) (*payroll.GenerateResult, error)
}

type payrollReader interface {
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Payroll, error)
}

type employeeReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error)
	ListActive(ctx context.Context) ([]employee.Employee, error)
}

// WorkflowService coordinates bulk operations in two phases: a strict
// validation pass over the whole batch, then a lenient execution pass.
// Validation failures reject the batch untouched; execution failures
// are collected per item while the rest of the batch continues.
type WorkflowService struct {
	leaves    leaveReader
	approver  leaveApprover
	payrolls  payrollReader
	generator payrollGenerator
	employees employeeReader
}

func NewWorkflowService(
	leaves leaveReader,
	approver leaveApprover,
	payrolls payrollReader,
	generator payrollGenerator,
	employees employeeReader,
) *WorkflowService {
	return &WorkflowService{
		leaves:    leaves,
		approver:  approver,
		payrolls:  payrolls,
		generator: generator,
		employees: employees,
	}
}

// BulkApproveLeaves approves a set of pending leave requests.
func (s *WorkflowService) BulkApproveLeaves(ctx context.Context, req *BulkApproveLeavesRequest) (*BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	found, err := s.leaves.GetByIDs(ctx, req.LeaveIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]leave.Leave, len(found))
	for _, lv := range found {
		byID[lv.ID] = lv
	}

	var invalid []ItemError
	for _, id := range req.LeaveIDs {
		lv, ok := byID[id]
		if !ok {
			invalid = append(invalid, ItemError{ID: id, Reason: "leave request not found"})
			continue
		}
		if lv.Status != leave.StatusPending {
			invalid = append(invalid, ItemError{ID: id, Reason: fmt.Sprintf("leave request is %s, not pending", lv.Status)})
		}
	}
	if len(invalid) > 0 {
		return nil, &BatchValidationError{Items: invalid}
	}

	result := &BulkResult{}
	for _, id := range req.LeaveIDs {
		_, err := s.approver.Approve(ctx, &leave.ReviewLeaveRequest{ID: id, Notes: req.Notes})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ItemError{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded++
	}

	return result, nil
}

// BulkGeneratePayroll pre-validates the employee set and period, then
// hands generation to the payroll service.
func (s *WorkflowService) BulkGeneratePayroll(ctx context.Context, req *payroll.GeneratePayrollRequest) (*payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var employees []employee.Employee
	var err error
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employees.GetByIDs(ctx, req.EmployeeIDs)
	} else {
		employees, err = s.employees.ListActive(ctx)
	}
	if err != nil {
		return nil, err
	}

	byID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	var invalid []ItemError
	for _, id := range req.EmployeeIDs {
		if _, ok := byID[id]; !ok {
			invalid = append(invalid, ItemError{ID: id, Reason: "employee not found"})
		}
	}
	for _, emp := range employees {
		if emp.Status != employee.StatusActive {
			invalid = append(invalid, ItemError{ID: emp.ID, Reason: "employee is not active"})
			continue
		}
		existing, err := s.payrolls.GetByEmployeePeriod(ctx, emp.ID, req.PeriodMonth, req.PeriodYear)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if !req.Regenerate {
				invalid = append(invalid, ItemError{ID: emp.ID, Reason: "payroll record already exists for this period"})
			} else if existing.Status != payroll.StatusDraft {
				invalid = append(invalid, ItemError{ID: emp.ID, Reason: fmt.Sprintf("existing payroll is %s and cannot be regenerated", existing.Status)})
			}
		}
	}
	if len(invalid) > 0 {
		return nil, &BatchValidationError{Items: invalid}
	}

	return s.generator.Generate(ctx, req)
}
