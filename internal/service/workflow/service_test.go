package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/leave"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveReader struct {
	leaves map[string]leave.Leave
}

func (f *fakeLeaveReader) GetByIDs(ctx context.Context, ids []string) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, id := range ids {
		if lv, ok := f.leaves[id]; ok {
			out = append(out, lv)
		}
	}
	return out, nil
}

type fakeApprover struct {
	approved []string
	failOn   map[string]error
}

func (f *fakeApprover) Approve(ctx context.Context, req *leave.ReviewLeaveRequest) (*leave.LeaveResponse, error) {
	if err, ok := f.failOn[req.ID]; ok {
		return nil, err
	}
	f.approved = append(f.approved, req.ID)
	return &leave.LeaveResponse{ID: req.ID, Status: string(leave.StatusApproved)}, nil
}

type fakePayrollReader struct {
	existing map[string]*payroll.Payroll
}

func (f *fakePayrollReader) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	return f.existing[employeeID], nil
}

type fakeGenerator struct {
	called bool
	result *payroll.GenerateResult
}

func (f *fakeGenerator) Generate(ctx context.Context, req *payroll.GeneratePayrollRequest) (*payroll.GenerateResult, error) {
	f.called = true
	return f.result, nil
}

type fakeEmployeeReader struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeReader) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, id := range ids {
		if emp, ok := f.employees[id]; ok {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeReader) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.Status == employee.StatusActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func TestBulkApproveLeaves(t *testing.T) {
	pending := func(id string) leave.Leave {
		return leave.Leave{ID: id, Status: leave.StatusPending}
	}

	t.Run("approves every pending leave", func(t *testing.T) {
		approver := &fakeApprover{}
		svc := NewWorkflowService(
			&fakeLeaveReader{leaves: map[string]leave.Leave{
				"lv-1": pending("lv-1"),
				"lv-2": pending("lv-2"),
			}},
			approver, nil, nil, nil,
		)

		result, err := svc.BulkApproveLeaves(context.Background(), &BulkApproveLeavesRequest{
			LeaveIDs: []string{"lv-1", "lv-2"},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Succeeded)
		assert.Equal(t, 0, result.Failed)
		assert.Empty(t, result.Errors)
		assert.Equal(t, []string{"lv-1", "lv-2"}, approver.approved)
	})

	t.Run("one bad id rejects the whole batch untouched", func(t *testing.T) {
		approver := &fakeApprover{}
		svc := NewWorkflowService(
			&fakeLeaveReader{leaves: map[string]leave.Leave{
				"lv-1": pending("lv-1"),
				"lv-2": {ID: "lv-2", Status: leave.StatusApproved},
			}},
			approver, nil, nil, nil,
		)

		_, err := svc.BulkApproveLeaves(context.Background(), &BulkApproveLeavesRequest{
			LeaveIDs: []string{"lv-1", "lv-2", "lv-missing"},
		})

		var batchErr *BatchValidationError
		require.ErrorAs(t, err, &batchErr)
		assert.Len(t, batchErr.Items, 2)
		assert.Empty(t, approver.approved, "nothing should be approved when validation fails")
	})

	t.Run("execution failures do not stop the batch", func(t *testing.T) {
		approver := &fakeApprover{failOn: map[string]error{
			"lv-2": errors.New("notification store unavailable"),
		}}
		svc := NewWorkflowService(
			&fakeLeaveReader{leaves: map[string]leave.Leave{
				"lv-1": pending("lv-1"),
				"lv-2": pending("lv-2"),
				"lv-3": pending("lv-3"),
			}},
			approver, nil, nil, nil,
		)

		result, err := svc.BulkApproveLeaves(context.Background(), &BulkApproveLeavesRequest{
			LeaveIDs: []string{"lv-1", "lv-2", "lv-3"},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Succeeded)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "lv-2", result.Errors[0].ID)
		assert.Equal(t, []string{"lv-1", "lv-3"}, approver.approved)
	})

	t.Run("empty id list is a validation error", func(t *testing.T) {
		svc := NewWorkflowService(&fakeLeaveReader{}, &fakeApprover{}, nil, nil, nil)

		_, err := svc.BulkApproveLeaves(context.Background(), &BulkApproveLeavesRequest{})
		assert.Error(t, err)
	})
}

func TestBulkGeneratePayroll(t *testing.T) {
	active := func(id string) employee.Employee {
		return employee.Employee{ID: id, Status: employee.StatusActive}
	}

	t.Run("delegates to the generator when validation passes", func(t *testing.T) {
		gen := &fakeGenerator{result: &payroll.GenerateResult{Generated: 2}}
		svc := NewWorkflowService(
			nil, nil,
			&fakePayrollReader{existing: map[string]*payroll.Payroll{}},
			gen,
			&fakeEmployeeReader{employees: map[string]employee.Employee{
				"emp-1": active("emp-1"),
				"emp-2": active("emp-2"),
			}},
		)

		result, err := svc.BulkGeneratePayroll(context.Background(), &payroll.GeneratePayrollRequest{
			PeriodMonth: 3,
			PeriodYear:  2025,
			EmployeeIDs: []string{"emp-1", "emp-2"},
		})
		require.NoError(t, err)

		assert.True(t, gen.called)
		assert.Equal(t, 2, result.Generated)
	})

	t.Run("unknown and inactive employees reject the batch", func(t *testing.T) {
		gen := &fakeGenerator{}
		svc := NewWorkflowService(
			nil, nil,
			&fakePayrollReader{existing: map[string]*payroll.Payroll{}},
			gen,
			&fakeEmployeeReader{employees: map[string]employee.Employee{
				"emp-1": active("emp-1"),
				"emp-2": {ID: "emp-2", Status: employee.StatusInactive},
			}},
		)

		_, err := svc.BulkGeneratePayroll(context.Background(), &payroll.GeneratePayrollRequest{
			PeriodMonth: 3,
			PeriodYear:  2025,
			EmployeeIDs: []string{"emp-1", "emp-2", "emp-ghost"},
		})

		var batchErr *BatchValidationError
		require.ErrorAs(t, err, &batchErr)
		assert.Len(t, batchErr.Items, 2)
		assert.False(t, gen.called)
	})

	t.Run("existing period rejects unless regenerating a draft", func(t *testing.T) {
		gen := &fakeGenerator{result: &payroll.GenerateResult{Generated: 1}}
		svc := NewWorkflowService(
			nil, nil,
			&fakePayrollReader{existing: map[string]*payroll.Payroll{
				"emp-1": {ID: "pr-1", EmployeeID: "emp-1", Status: payroll.StatusDraft},
			}},
			gen,
			&fakeEmployeeReader{employees: map[string]employee.Employee{
				"emp-1": active("emp-1"),
			}},
		)

		req := &payroll.GeneratePayrollRequest{
			PeriodMonth: 3,
			PeriodYear:  2025,
			EmployeeIDs: []string{"emp-1"},
		}

		_, err := svc.BulkGeneratePayroll(context.Background(), req)
		var batchErr *BatchValidationError
		require.ErrorAs(t, err, &batchErr)

		req.Regenerate = true
		_, err = svc.BulkGeneratePayroll(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, gen.called)
	})

	t.Run("finalized payroll cannot be regenerated", func(t *testing.T) {
		gen := &fakeGenerator{}
		svc := NewWorkflowService(
			nil, nil,
			&fakePayrollReader{existing: map[string]*payroll.Payroll{
				"emp-1": {ID: "pr-1", EmployeeID: "emp-1", Status: payroll.StatusFinalized},
			}},
			gen,
			&fakeEmployeeReader{employees: map[string]employee.Employee{
				"emp-1": active("emp-1"),
			}},
		)

		_, err := svc.BulkGeneratePayroll(context.Background(), &payroll.GeneratePayrollRequest{
			PeriodMonth: 3,
			PeriodYear:  2025,
			EmployeeIDs: []string{"emp-1"},
			Regenerate:  true,
		})

		var batchErr *BatchValidationError
		require.ErrorAs(t, err, &batchErr)
		assert.False(t, gen.called)
	})
}
