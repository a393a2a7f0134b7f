package leave

import "time"

type Type string

const (
	TypeAnnual    Type = "annual"
	TypeSick      Type = "sick"
	TypePersonal  Type = "personal"
	TypeMaternity Type = "maternity"
	TypeUnpaid    Type = "unpaid"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypePersonal, TypeMaternity, TypeUnpaid:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Leave is one leave request. TotalDays counts calendar days inclusive
// of both endpoints.
type Leave struct {
	ID            string
	EmployeeID    string
	Type          Type
	StartDate     time.Time
	EndDate       time.Time
	TotalDays     int
	Reason        string
	Status        Status
	ReviewerID    *string
	ReviewerNotes *string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}
