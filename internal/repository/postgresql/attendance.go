package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.clock_in, a.clock_out,
	a.clock_in_latitude, a.clock_in_longitude,
	a.clock_out_latitude, a.clock_out_longitude,
	a.clock_in_photo_path, a.clock_out_photo_path, a.face_confidence,
	a.status, a.late_minutes, a.early_leave_minutes,
	a.work_hours, a.overtime_hours, a.notes,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, joined bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.ClockInLatitude, &att.ClockInLongitude,
		&att.ClockOutLatitude, &att.ClockOutLongitude,
		&att.ClockInPhotoPath, &att.ClockOutPhotoPath, &att.FaceConfidence,
		&att.Status, &att.LateMinutes, &att.EarlyLeaveMinutes,
		&att.WorkHours, &att.OvertimeHours, &att.Notes,
		&att.CreatedAt, &att.UpdatedAt,
	}
	if joined {
		dest = append(dest, &att.EmployeeName, &att.EmployeeCode)
	}
	err := row.Scan(dest...)
	return att, err
}

// Create implements attendance.AttendanceRepository.
//
// The attendances table carries UNIQUE (employee_id, date); a concurrent
// duplicate insert surfaces as the same denial the service-level check
// produces.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if att.ID == "" {
		att.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, date, clock_in, clock_out,
			clock_in_latitude, clock_in_longitude,
			clock_out_latitude, clock_out_longitude,
			clock_in_photo_path, clock_out_photo_path, face_confidence,
			status, late_minutes, early_leave_minutes,
			work_hours, overtime_hours, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.ClockIn,
		att.ClockOut,
		att.ClockInLatitude,
		att.ClockInLongitude,
		att.ClockOutLatitude,
		att.ClockOutLongitude,
		att.ClockInPhotoPath,
		att.ClockOutPhotoPath,
		att.FaceConfidence,
		att.Status,
		att.LateMinutes,
		att.EarlyLeaveMinutes,
		att.WorkHours,
		att.OvertimeHours,
		att.Notes,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `,
			e.full_name AS employee_name,
			e.employee_code AS employee_code
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "clock_in":
		orderByField = "a.clock_in"
	case "clock_out":
		orderByField = "a.clock_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`SELECT`+attendanceColumns+`,
			e.full_name AS employee_name,
			e.employee_code AS employee_code
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, nil
}

// Update implements attendance.AttendanceRepository. The full row is
// written back; the service owns recomputation of derived fields.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			clock_in = $1, clock_out = $2,
			clock_out_latitude = $3, clock_out_longitude = $4,
			clock_out_photo_path = $5,
			status = $6, late_minutes = $7, early_leave_minutes = $8,
			work_hours = $9, overtime_hours = $10, notes = $11,
			updated_at = $12
		WHERE id = $13
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.ClockIn, att.ClockOut,
		att.ClockOutLatitude, att.ClockOutLongitude,
		att.ClockOutPhotoPath,
		att.Status, att.LateMinutes, att.EarlyLeaveMinutes,
		att.WorkHours, att.OvertimeHours, att.Notes,
		time.Now(), att.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Summarize implements attendance.AttendanceRepository.
func (a *attendanceRepository) Summarize(ctx context.Context, employeeID string, start, end time.Time) (attendance.PeriodSummary, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('present', 'late', 'partial')),
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'partial'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COALESCE(SUM(overtime_hours), 0)
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
	`

	var s attendance.PeriodSummary
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(
		&s.AttendedDays, &s.PresentDays, &s.LateDays, &s.PartialDays,
		&s.AbsentDays, &s.OvertimeHours,
	)
	if err != nil {
		return attendance.PeriodSummary{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	return s, nil
}

// EmployeeIDsWithRecordOn implements attendance.AttendanceRepository.
func (a *attendanceRepository) EmployeeIDsWithRecordOn(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `SELECT employee_id FROM attendances WHERE date = $1`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records for date: %w", err)
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

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
