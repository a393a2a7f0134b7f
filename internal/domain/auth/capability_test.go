package auth

import (
	"testing"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	cases := []struct {
		name string
		role employee.Role
		cap  Capability
		want bool
	}{
		{"admin manages employees", employee.RoleAdmin, CapManageEmployees, true},
		{"admin manages payroll", employee.RoleAdmin, CapManagePayroll, true},
		{"manager reviews leaves", employee.RoleManager, CapReviewLeaves, true},
		{"manager sees all attendance", employee.RoleManager, CapViewAllAttendance, true},
		{"manager cannot manage payroll", employee.RoleManager, CapManagePayroll, false},
		{"manager cannot manage employees", employee.RoleManager, CapManageEmployees, false},
		{"employee holds no capabilities", employee.RoleEmployee, CapReviewLeaves, false},
		{"unknown role holds nothing", employee.Role("ghost"), CapReviewLeaves, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Can(c.role, c.cap))
		})
	}
}
