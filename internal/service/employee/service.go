package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	loc *time.Location
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, loc *time.Location) employee.EmployeeService {
	return &EmployeeServiceImpl{EmployeeRepository: employeeRepo, loc: loc}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	basicSalary := decimal.Zero
	if req.BasicSalary != nil {
		basicSalary, _ = decimal.NewFromString(*req.BasicSalary)
	}
	allowances := decimal.Zero
	if req.Allowances != nil {
		allowances, _ = decimal.NewFromString(*req.Allowances)
	}

	hireDate, _ := time.ParseInLocation("2006-01-02", req.HireDate, s.loc)

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         employee.Role(strings.ToLower(req.Role)),
		Department:   req.Department,
		Position:     req.Position,
		BasicSalary:  basicSalary,
		Allowances:   allowances,
		Status:       employee.StatusActive,
		HireDate:     hireDate,
	})
	if err != nil {
		return nil, err
	}

	resp := toEmployeeResponse(created)
	return &resp, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req *employee.UpdateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.Email != nil {
		existing.Email = strings.ToLower(*req.Email)
	}
	if req.Role != nil {
		existing.Role = employee.Role(strings.ToLower(*req.Role))
	}
	if req.Department != nil {
		existing.Department = *req.Department
	}
	if req.Position != nil {
		existing.Position = *req.Position
	}
	if req.BasicSalary != nil {
		existing.BasicSalary, _ = decimal.NewFromString(*req.BasicSalary)
	}
	if req.Allowances != nil {
		existing.Allowances, _ = decimal.NewFromString(*req.Allowances)
	}
	if req.Status != nil {
		existing.Status = employee.Status(*req.Status)
	}

	if err := s.EmployeeRepository.Update(ctx, existing); err != nil {
		return nil, err
	}

	resp := toEmployeeResponse(existing)
	return &resp, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (*employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter *employee.EmployeeFilter) (*employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, *filter)
	if err != nil {
		return nil, err
	}

	resp := &employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, toEmployeeResponse(emp))
	}

	return resp, nil
}

// Delete implements employee.EmployeeService. Employees are soft
// deleted so their attendance and payroll history stays intact.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.EmployeeRepository.SoftDelete(ctx, id)
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		FullName:       emp.FullName,
		Email:          emp.Email,
		Role:           string(emp.Role),
		Department:     emp.Department,
		Position:       emp.Position,
		BasicSalary:    emp.BasicSalary.StringFixed(2),
		Allowances:     emp.Allowances.StringFixed(2),
		FaceRegistered: emp.FaceRegistered,
		Status:         string(emp.Status),
		HireDate:       emp.HireDate.Format("2006-01-02"),
		CreatedAt:      emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      emp.UpdatedAt.Format(time.RFC3339),
	}
}
