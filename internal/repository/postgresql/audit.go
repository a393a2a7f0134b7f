package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/audit"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

// Create implements audit.AuditRepository. Entries are append-only.
func (r *auditRepository) Create(ctx context.Context, e audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	var detailJSON []byte
	if e.Detail != nil {
		var err error
		detailJSON, err = json.Marshal(e.Detail)
		if err != nil {
			return fmt.Errorf("failed to encode audit detail: %w", err)
		}
	}

	query := `
		INSERT INTO audit_entries (
			id, actor_id, action, reference_kind, reference_id, detail
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := q.Exec(ctx, query,
		e.ID, e.ActorID, e.Action, e.Reference.Kind, e.Reference.ID, detailJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

// ListByReference implements audit.AuditRepository.
func (r *auditRepository) ListByReference(ctx context.Context, ref audit.Reference) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, actor_id, action, reference_kind, reference_id, detail, created_at
		FROM audit_entries
		WHERE reference_kind = $1 AND reference_id = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, ref.Kind, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var detailJSON []byte
		err := rows.Scan(
			&e.ID, &e.ActorID, &e.Action, &e.Reference.Kind, &e.Reference.ID,
			&detailJSON, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if len(detailJSON) > 0 {
			if err := json.Unmarshal(detailJSON, &e.Detail); err != nil {
				return nil, fmt.Errorf("failed to decode audit detail: %w", err)
			}
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}
