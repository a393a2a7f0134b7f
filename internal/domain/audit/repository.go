package audit

import "context"

// AuditRepository appends and reads audit entries.
type AuditRepository interface {
	Create(ctx context.Context, e Entry) error
	ListByReference(ctx context.Context, ref Reference) ([]Entry, error)
}
