package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/payroll"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

const payrollColumns = `
	p.id, p.employee_id, p.period_month, p.period_year,
	p.basic_salary, p.allowances, p.overtime_hours, p.overtime_pay,
	p.absence_penalty, p.other_deductions, p.gross_salary, p.tax_amount,
	p.net_salary, p.work_days, p.present_days, p.late_days, p.absent_days,
	p.leave_days, p.status, p.payment_method, p.payment_reference,
	p.payment_date, p.finalized_at, p.paid_at, p.notes,
	p.created_at, p.updated_at`

func scanPayroll(row pgx.Row, joined bool) (payroll.Payroll, error) {
	var p payroll.Payroll
	dest := []interface{}{
		&p.ID, &p.EmployeeID, &p.PeriodMonth, &p.PeriodYear,
		&p.BasicSalary, &p.Allowances, &p.OvertimeHours, &p.OvertimePay,
		&p.AbsencePenalty, &p.OtherDeductions, &p.GrossSalary, &p.TaxAmount,
		&p.NetSalary, &p.WorkDays, &p.PresentDays, &p.LateDays, &p.AbsentDays,
		&p.LeaveDays, &p.Status, &p.PaymentMethod, &p.PaymentReference,
		&p.PaymentDate, &p.FinalizedAt, &p.PaidAt, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if joined {
		dest = append(dest, &p.EmployeeName, &p.EmployeeCode)
	}
	err := row.Scan(dest...)
	return p, err
}

// Create implements payroll.PayrollRepository.
//
// The payrolls table carries UNIQUE (employee_id, period_month,
// period_year); a concurrent duplicate generation surfaces as the same
// denial the service-level existence check produces.
func (r *payrollRepository) Create(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO payrolls (
			id, employee_id, period_month, period_year,
			basic_salary, allowances, overtime_hours, overtime_pay,
			absence_penalty, other_deductions, gross_salary, tax_amount,
			net_salary, work_days, present_days, late_days, absent_days,
			leave_days, status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.PeriodMonth, p.PeriodYear,
		p.BasicSalary, p.Allowances, p.OvertimeHours, p.OvertimePay,
		p.AbsencePenalty, p.OtherDeductions, p.GrossSalary, p.TaxAmount,
		p.NetSalary, p.WorkDays, p.PresentDays, p.LateDays, p.AbsentDays,
		p.LeaveDays, p.Status, p.Notes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Payroll{}, payroll.ErrPayrollPeriodExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return p, nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepository) Update(ctx context.Context, p payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls SET
			basic_salary = $1, allowances = $2, overtime_hours = $3,
			overtime_pay = $4, absence_penalty = $5, other_deductions = $6,
			gross_salary = $7, tax_amount = $8, net_salary = $9,
			work_days = $10, present_days = $11, late_days = $12,
			absent_days = $13, leave_days = $14, status = $15,
			payment_method = $16, payment_reference = $17, payment_date = $18,
			finalized_at = $19, paid_at = $20, notes = $21, updated_at = $22
		WHERE id = $23
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		p.BasicSalary, p.Allowances, p.OvertimeHours,
		p.OvertimePay, p.AbsencePenalty, p.OtherDeductions,
		p.GrossSalary, p.TaxAmount, p.NetSalary,
		p.WorkDays, p.PresentDays, p.LateDays,
		p.AbsentDays, p.LeaveDays, p.Status,
		p.PaymentMethod, p.PaymentReference, p.PaymentDate,
		p.FinalizedAt, p.PaidAt, p.Notes, time.Now(), p.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollNotFound
		}
		return fmt.Errorf("failed to update payroll: %w", err)
	}

	return nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollColumns + `,
			e.full_name AS employee_name,
			e.employee_code AS employee_code
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1`

	p, err := scanPayroll(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + payrollColumns + `
		FROM payrolls p
		WHERE p.employee_id = $1 AND p.period_month = $2 AND p.period_year = $3`

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll for period: %w", err)
	}

	return &p, nil
}

// ExistsForPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payrolls
			WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, month, year).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll existence: %w", err)
	}

	return exists, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.PeriodMonth != nil {
		baseWhere += fmt.Sprintf(" AND p.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseWhere += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payrolls p WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	selectQuery := fmt.Sprintf(`SELECT`+payrollColumns+`,
			e.full_name AS employee_name,
			e.employee_code AS employee_code
		FROM payrolls p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period_year DESC, p.period_month DESC, e.employee_code ASC
		LIMIT $%d OFFSET $%d`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}

	return payrolls, total, nil
}

// DeleteDraft implements payroll.PayrollRepository. Only draft rows can
// be removed; finalized and paid records are immutable.
func (r *payrollRepository) DeleteDraft(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`DELETE FROM payrolls WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft payroll: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotDraft
	}

	return nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
