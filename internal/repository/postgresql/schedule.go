package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/schedule"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

const scheduleColumns = `
	s.id, s.employee_id, s.weekday, s.start_time, s.end_time,
	s.location, s.is_active, s.created_at, s.updated_at`

func scanSchedule(row pgx.Row, joined bool) (schedule.Schedule, error) {
	var s schedule.Schedule
	dest := []interface{}{
		&s.ID, &s.EmployeeID, &s.Weekday, &s.StartTime, &s.EndTime,
		&s.Location, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	}
	if joined {
		dest = append(dest, &s.EmployeeName)
	}
	err := row.Scan(dest...)
	return s, err
}

// Create implements schedule.ScheduleRepository.
func (r *scheduleRepository) Create(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO schedules (
			id, employee_id, weekday, start_time, end_time, location, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.Weekday, s.StartTime, s.EndTime, s.Location, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	return s, nil
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepository) Update(ctx context.Context, s schedule.Schedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules SET
			weekday = $1, start_time = $2, end_time = $3,
			location = $4, is_active = $5, updated_at = $6
		WHERE id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		s.Weekday, s.StartTime, s.EndTime,
		s.Location, s.IsActive, time.Now(), s.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	return nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepository) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + scheduleColumns + `,
			e.full_name AS employee_name
		FROM schedules s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1`

	s, err := scanSchedule(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	return s, nil
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepository) List(ctx context.Context, filter schedule.ScheduleFilter) ([]schedule.Schedule, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Weekday != nil {
		baseWhere += fmt.Sprintf(" AND s.weekday = $%d", argIdx)
		args = append(args, *filter.Weekday)
		argIdx++
	}
	if filter.ActiveOnly {
		baseWhere += " AND s.is_active = TRUE"
	}

	countQuery := "SELECT COUNT(*) FROM schedules s WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count schedules: %w", err)
	}

	selectQuery := fmt.Sprintf(`SELECT`+scheduleColumns+`,
			e.full_name AS employee_name
		FROM schedules s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.weekday ASC, s.start_time ASC
		LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, total, nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

// ListActiveForEmployeeWeekday implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListActiveForEmployeeWeekday(ctx context.Context, employeeID string, weekday int, excludeID string) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + scheduleColumns + `
		FROM schedules s
		WHERE s.employee_id = $1
		  AND s.weekday = $2
		  AND s.is_active = TRUE
		  AND ($3 = '' OR s.id != $3)
		ORDER BY s.start_time ASC`

	rows, err := q.Query(ctx, query, employeeID, weekday, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules for weekday: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, nil
}

// ListAllActive implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListAllActive(ctx context.Context) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + scheduleColumns + `,
			e.full_name AS employee_name
		FROM schedules s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.is_active = TRUE
		ORDER BY s.employee_id ASC, s.weekday ASC, s.start_time ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, nil
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}
