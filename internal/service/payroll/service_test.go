package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/config"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fakes embed the repository interfaces so only the methods the
// generation pre-checks touch need an implementation.

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByIDs(_ context.Context, ids []string) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		if emp, ok := f.employees[id]; ok {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		if emp.Status == employee.StatusActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakePayrollRepo struct {
	payroll.PayrollRepository
	existing map[string]*payroll.Payroll
}

func (f *fakePayrollRepo) GetByEmployeePeriod(_ context.Context, employeeID string, _, _ int) (*payroll.Payroll, error) {
	return f.existing[employeeID], nil
}

func testSalaryConfig() config.SalaryConfig {
	return config.SalaryConfig{
		OvertimeRatePerHour: "25000",
		TaxRate:             "0.05",
		DefaultBasicSalary:  "5000000",
	}
}

func newTestPayrollService(t *testing.T, employees *fakeEmployeeRepo, payrolls *fakePayrollRepo) payroll.PayrollService {
	t.Helper()
	svc, err := NewPayrollService(
		nil, payrolls, employees, nil, nil,
		nil, nil, nil, testSalaryConfig(), time.UTC,
	)
	require.NoError(t, err)
	return svc
}

func TestGenerateRejectsExistingPeriodForNamedEmployee(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Status: employee.StatusActive},
	}}
	payrolls := &fakePayrollRepo{existing: map[string]*payroll.Payroll{
		"emp-1": {ID: "pay-1", EmployeeID: "emp-1", Status: payroll.StatusDraft},
	}}
	svc := newTestPayrollService(t, employees, payrolls)

	result, err := svc.Generate(context.Background(), &payroll.GeneratePayrollRequest{
		PeriodMonth: 3,
		PeriodYear:  2026,
		EmployeeIDs: []string{"emp-1"},
	})

	require.ErrorIs(t, err, payroll.ErrPayrollPeriodExists)
	assert.Nil(t, result)
}

func TestGenerateSkipsExistingPeriodOnFullRun(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Status: employee.StatusActive},
		"emp-2": {ID: "emp-2", Status: employee.StatusActive},
	}}
	payrolls := &fakePayrollRepo{existing: map[string]*payroll.Payroll{
		"emp-1": {ID: "pay-1", EmployeeID: "emp-1", Status: payroll.StatusDraft},
		"emp-2": {ID: "pay-2", EmployeeID: "emp-2", Status: payroll.StatusDraft},
	}}
	svc := newTestPayrollService(t, employees, payrolls)

	result, err := svc.Generate(context.Background(), &payroll.GeneratePayrollRequest{
		PeriodMonth: 3,
		PeriodYear:  2026,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Generated)
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, result.Errors)
}

func TestGenerateRejectsUnknownNamedEmployee(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}
	payrolls := &fakePayrollRepo{existing: map[string]*payroll.Payroll{}}
	svc := newTestPayrollService(t, employees, payrolls)

	_, err := svc.Generate(context.Background(), &payroll.GeneratePayrollRequest{
		PeriodMonth: 3,
		PeriodYear:  2026,
		EmployeeIDs: []string{"ghost"},
	})

	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
