package employee

import "context"

// EmployeeRepository defines data access for the employee registry.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListActive(ctx context.Context) ([]Employee, error)
	SetFaceRegistered(ctx context.Context, id string, registered bool) error
	SoftDelete(ctx context.Context, id string) error
}

// EmployeeService defines business logic for employee management.
type EmployeeService interface {
	Create(ctx context.Context, req *CreateEmployeeRequest) (*EmployeeResponse, error)
	Update(ctx context.Context, req *UpdateEmployeeRequest) (*EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*EmployeeResponse, error)
	List(ctx context.Context, filter *EmployeeFilter) (*ListEmployeesResponse, error)
	Delete(ctx context.Context, id string) error
}
