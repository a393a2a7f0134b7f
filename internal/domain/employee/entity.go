package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusResigned Status = "resigned"
)

type Employee struct {
	ID             string
	EmployeeCode   string
	FullName       string
	Email          string
	PasswordHash   string
	Role           Role
	Department     string
	Position       string
	BasicSalary    decimal.Decimal
	Allowances     decimal.Decimal
	FaceRegistered bool
	Status         Status
	HireDate       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}
