package holiday

import "time"

type Type string

const (
	TypeNational  Type = "national"
	TypeReligious Type = "religious"
	TypeSchool    Type = "school"
	TypeSemester  Type = "semester"
	TypeCustom    Type = "custom"
)

func (t Type) Valid() bool {
	switch t {
	case TypeNational, TypeReligious, TypeSchool, TypeSemester, TypeCustom:
		return true
	}
	return false
}

// Holiday is a non-working date range. A holiday either applies to
// everyone or is scoped to departments and/or roles.
type Holiday struct {
	ID               string
	Name             string
	Type             Type
	StartDate        time.Time
	EndDate          time.Time
	AppliesToAll     bool
	Departments      []string
	Roles            []string
	AllowAttendance  bool
	OvertimeEligible bool
	Description      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AppliesTo reports whether the holiday covers an employee in the given
// department and role.
func (h Holiday) AppliesTo(department, role string) bool {
	if h.AppliesToAll {
		return true
	}
	for _, d := range h.Departments {
		if d == department {
			return true
		}
	}
	for _, r := range h.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Covers reports whether date falls inside the holiday range, endpoints
// inclusive.
func (h Holiday) Covers(date time.Time) bool {
	return !date.Before(h.StartDate) && !date.After(h.EndDate)
}
