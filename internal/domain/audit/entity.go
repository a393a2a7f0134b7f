package audit

import "time"

// ReferenceKind names the aggregate an audit entry points at.
type ReferenceKind string

const (
	RefAttendance ReferenceKind = "attendance"
	RefLeave      ReferenceKind = "leave"
	RefPayroll    ReferenceKind = "payroll"
	RefSchedule   ReferenceKind = "schedule"
	RefEmployee   ReferenceKind = "employee"
)

// Reference ties an entry to exactly one record of a known kind.
type Reference struct {
	Kind ReferenceKind `json:"kind"`
	ID   string        `json:"id"`
}

// Entry is one append-only audit record. Detail holds the before/after
// values or workflow context as JSONB.
type Entry struct {
	ID        string
	ActorID   string
	Action    string
	Reference Reference
	Detail    map[string]interface{}
	CreatedAt time.Time
}
