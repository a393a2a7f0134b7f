package auth

import "github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"

// Capability names an action a role may perform. Authorization is a
// lookup in the table below; nothing outside this file compares role
// strings.
type Capability string

const (
	CapManageEmployees   Capability = "employees:manage"
	CapCorrectAttendance Capability = "attendance:correct"
	CapViewAllAttendance Capability = "attendance:view_all"
	CapReviewLeaves      Capability = "leaves:review"
	CapManageHolidays    Capability = "holidays:manage"
	CapManageWorkPeriods Capability = "work_periods:manage"
	CapManageSchedules   Capability = "schedules:manage"
	CapManagePayroll     Capability = "payroll:manage"
	CapViewAllPayrolls   Capability = "payroll:view_all"
	CapManageEnrollments Capability = "face:manage"
)

var roleCapabilities = map[employee.Role]map[Capability]struct{}{
	employee.RoleAdmin: capSet(
		CapManageEmployees,
		CapCorrectAttendance,
		CapViewAllAttendance,
		CapReviewLeaves,
		CapManageHolidays,
		CapManageWorkPeriods,
		CapManageSchedules,
		CapManagePayroll,
		CapViewAllPayrolls,
		CapManageEnrollments,
	),
	employee.RoleManager: capSet(
		CapViewAllAttendance,
		CapReviewLeaves,
		CapViewAllPayrolls,
	),
	employee.RoleEmployee: capSet(),
}

func capSet(caps ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Can reports whether the role holds the capability.
func Can(role employee.Role, c Capability) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}
