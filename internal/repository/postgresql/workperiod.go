package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
)

type workPeriodRepository struct {
	db *database.DB
}

// Schedule, breaks and overtime settings live in JSONB columns.
func scanWorkPeriod(row pgx.Row) (workperiod.WorkPeriod, error) {
	var wp workperiod.WorkPeriod
	var scheduleJSON, breaksJSON, overtimeJSON []byte

	err := row.Scan(
		&wp.ID, &wp.Name, &scheduleJSON, &breaksJSON,
		&wp.LateToleranceMinutes, &wp.EarlyLeaveMinutes, &overtimeJSON,
		&wp.Departments, &wp.EffectiveFrom, &wp.EffectiveTo, &wp.IsActive,
		&wp.CreatedAt, &wp.UpdatedAt,
	)
	if err != nil {
		return workperiod.WorkPeriod{}, err
	}

	if err := json.Unmarshal(scheduleJSON, &wp.Schedule); err != nil {
		return workperiod.WorkPeriod{}, fmt.Errorf("failed to decode schedule: %w", err)
	}
	if len(breaksJSON) > 0 {
		if err := json.Unmarshal(breaksJSON, &wp.Breaks); err != nil {
			return workperiod.WorkPeriod{}, fmt.Errorf("failed to decode breaks: %w", err)
		}
	}
	if len(overtimeJSON) > 0 {
		if err := json.Unmarshal(overtimeJSON, &wp.Overtime); err != nil {
			return workperiod.WorkPeriod{}, fmt.Errorf("failed to decode overtime settings: %w", err)
		}
	}

	return wp, nil
}

const workPeriodColumns = `
	id, name, schedule, breaks, late_tolerance_minutes,
	early_leave_minutes, overtime, departments, effective_from,
	effective_to, is_active, created_at, updated_at`

// Create implements workperiod.WorkPeriodRepository.
func (r *workPeriodRepository) Create(ctx context.Context, wp workperiod.WorkPeriod) (workperiod.WorkPeriod, error) {
	q := GetQuerier(ctx, r.db)

	if wp.ID == "" {
		wp.ID = uuid.NewString()
	}

	scheduleJSON, err := json.Marshal(wp.Schedule)
	if err != nil {
		return workperiod.WorkPeriod{}, fmt.Errorf("failed to encode schedule: %w", err)
	}
	breaksJSON, err := json.Marshal(wp.Breaks)
	if err != nil {
		return workperiod.WorkPeriod{}, fmt.Errorf("failed to encode breaks: %w", err)
	}
	overtimeJSON, err := json.Marshal(wp.Overtime)
	if err != nil {
		return workperiod.WorkPeriod{}, fmt.Errorf("failed to encode overtime settings: %w", err)
	}

	query := `
		INSERT INTO work_periods (
			id, name, schedule, breaks, late_tolerance_minutes,
			early_leave_minutes, overtime, departments, effective_from,
			effective_to, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		wp.ID, wp.Name, scheduleJSON, breaksJSON, wp.LateToleranceMinutes,
		wp.EarlyLeaveMinutes, overtimeJSON, wp.Departments, wp.EffectiveFrom,
		wp.EffectiveTo, wp.IsActive,
	).Scan(&wp.CreatedAt, &wp.UpdatedAt)

	if err != nil {
		return workperiod.WorkPeriod{}, fmt.Errorf("failed to create work period: %w", err)
	}

	return wp, nil
}

// Update implements workperiod.WorkPeriodRepository.
func (r *workPeriodRepository) Update(ctx context.Context, wp workperiod.WorkPeriod) error {
	q := GetQuerier(ctx, r.db)

	scheduleJSON, err := json.Marshal(wp.Schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	breaksJSON, err := json.Marshal(wp.Breaks)
	if err != nil {
		return fmt.Errorf("failed to encode breaks: %w", err)
	}
	overtimeJSON, err := json.Marshal(wp.Overtime)
	if err != nil {
		return fmt.Errorf("failed to encode overtime settings: %w", err)
	}

	query := `
		UPDATE work_periods SET
			name = $1, schedule = $2, breaks = $3,
			late_tolerance_minutes = $4, early_leave_minutes = $5,
			overtime = $6, departments = $7, effective_to = $8,
			is_active = $9, updated_at = $10
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err = q.QueryRow(ctx, query,
		wp.Name, scheduleJSON, breaksJSON,
		wp.LateToleranceMinutes, wp.EarlyLeaveMinutes,
		overtimeJSON, wp.Departments, wp.EffectiveTo,
		wp.IsActive, time.Now(), wp.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workperiod.ErrWorkPeriodNotFound
		}
		return fmt.Errorf("failed to update work period: %w", err)
	}

	return nil
}

// GetByID implements workperiod.WorkPeriodRepository.
func (r *workPeriodRepository) GetByID(ctx context.Context, id string) (workperiod.WorkPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + workPeriodColumns + ` FROM work_periods WHERE id = $1`

	wp, err := scanWorkPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workperiod.WorkPeriod{}, workperiod.ErrWorkPeriodNotFound
		}
		return workperiod.WorkPeriod{}, fmt.Errorf("failed to get work period: %w", err)
	}

	return wp, nil
}

// List implements workperiod.WorkPeriodRepository.
func (r *workPeriodRepository) List(ctx context.Context) ([]workperiod.WorkPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + workPeriodColumns + ` FROM work_periods ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query work periods: %w", err)
	}
	defer rows.Close()

	var periods []workperiod.WorkPeriod
	for rows.Next() {
		wp, err := scanWorkPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work period: %w", err)
		}
		periods = append(periods, wp)
	}

	return periods, nil
}

// ListActiveOn implements workperiod.WorkPeriodRepository.
func (r *workPeriodRepository) ListActiveOn(ctx context.Context, date time.Time) ([]workperiod.WorkPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + workPeriodColumns + `
		FROM work_periods
		WHERE is_active = TRUE
		  AND effective_from <= $1
		  AND (effective_to IS NULL OR effective_to >= $1)
		ORDER BY effective_from DESC`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query active work periods: %w", err)
	}
	defer rows.Close()

	var periods []workperiod.WorkPeriod
	for rows.Next() {
		wp, err := scanWorkPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work period: %w", err)
		}
		periods = append(periods, wp)
	}

	return periods, nil
}

// Delete implements workperiod.WorkPeriodRepository.
func (r *workPeriodRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM work_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work period: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return workperiod.ErrWorkPeriodNotFound
	}

	return nil
}

func NewWorkPeriodRepository(db *database.DB) workperiod.WorkPeriodRepository {
	return &workPeriodRepository{db: db}
}
