package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/leave"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

const leaveColumns = `
	l.id, l.employee_id, l.type, l.start_date, l.end_date, l.total_days,
	l.reason, l.status, l.reviewer_id, l.reviewer_notes, l.reviewed_at,
	l.created_at, l.updated_at`

func scanLeave(row pgx.Row, joined bool) (leave.Leave, error) {
	var lv leave.Leave
	dest := []interface{}{
		&lv.ID, &lv.EmployeeID, &lv.Type, &lv.StartDate, &lv.EndDate, &lv.TotalDays,
		&lv.Reason, &lv.Status, &lv.ReviewerID, &lv.ReviewerNotes, &lv.ReviewedAt,
		&lv.CreatedAt, &lv.UpdatedAt,
	}
	if joined {
		dest = append(dest, &lv.EmployeeName)
	}
	err := row.Scan(dest...)
	return lv, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, lv leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	if lv.ID == "" {
		lv.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leaves (
			id, employee_id, type, start_date, end_date, total_days,
			reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lv.ID, lv.EmployeeID, lv.Type, lv.StartDate, lv.EndDate, lv.TotalDays,
		lv.Reason, lv.Status,
	).Scan(&lv.CreatedAt, &lv.UpdatedAt)

	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return lv, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepository) Update(ctx context.Context, lv leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves SET
			type = $1, start_date = $2, end_date = $3, total_days = $4,
			reason = $5, status = $6, reviewer_id = $7, reviewer_notes = $8,
			reviewed_at = $9, updated_at = $10
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		lv.Type, lv.StartDate, lv.EndDate, lv.TotalDays,
		lv.Reason, lv.Status, lv.ReviewerID, lv.ReviewerNotes,
		lv.ReviewedAt, time.Now(), lv.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveNotFound
		}
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	return nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveColumns + `,
			e.full_name AS employee_name
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1`

	lv, err := scanLeave(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lv, nil
}

// GetByIDs implements leave.LeaveRepository.
func (r *leaveRepository) GetByIDs(ctx context.Context, ids []string) ([]leave.Leave, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leaveColumns + `,
			e.full_name AS employee_name
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE l.id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		lv, err := scanLeave(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, lv)
	}

	return leaves, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND l.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND l.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND l.end_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND l.start_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM leaves l WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`SELECT`+leaveColumns+`,
			e.full_name AS employee_name
		FROM leaves l
		LEFT JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		lv, err := scanLeave(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		leaves = append(leaves, lv)
	}

	return leaves, total, nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// HasOverlap implements leave.LeaveRepository. Rejected requests never
// block a new one.
func (r *leaveRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leaves
			WHERE employee_id = $1
			  AND status != 'rejected'
			  AND start_date <= $3
			  AND end_date >= $2
			  AND ($4 = '' OR id != $4)
		)
	`

	var overlaps bool
	if err := q.QueryRow(ctx, query, employeeID, start, end, excludeID).Scan(&overlaps); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return overlaps, nil
}

// ApprovedDaysBetween implements leave.LeaveRepository. Only the part of
// each approved request inside [start, end] is counted.
func (r *leaveRepository) ApprovedDaysBetween(ctx context.Context, employeeID string, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(
			LEAST(end_date, $3::date) - GREATEST(start_date, $2::date) + 1
		), 0)
		FROM leaves
		WHERE employee_id = $1
		  AND status = 'approved'
		  AND start_date <= $3
		  AND end_date >= $2
	`

	var days int
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&days); err != nil {
		return 0, fmt.Errorf("failed to count approved leave days: %w", err)
	}

	return days, nil
}

// EmployeeIDsOnApprovedLeave implements leave.LeaveRepository.
func (r *leaveRepository) EmployeeIDsOnApprovedLeave(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT employee_id FROM leaves WHERE status = 'approved' AND start_date <= $1 AND end_date >= $1`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved leaves for date: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
