package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/config"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/audit"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/leave"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/notification"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/payroll"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
	"github.com/omanjaya/sistem-absensi-manufac/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	leave.LeaveRepository
	calendar *WorkdayCalendar
	notifier notification.NotificationService
	audits   audit.AuditRepository

	rates        Rates
	defaultBasic decimal.Decimal
	loc          *time.Location

	now func() time.Time
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	calendar *WorkdayCalendar,
	notifier notification.NotificationService,
	audits audit.AuditRepository,
	cfg config.SalaryConfig,
	loc *time.Location,
) (payroll.PayrollService, error) {
	overtimeRate, err := decimal.NewFromString(cfg.OvertimeRatePerHour)
	if err != nil {
		return nil, fmt.Errorf("invalid overtime rate %q: %w", cfg.OvertimeRatePerHour, err)
	}
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid tax rate %q: %w", cfg.TaxRate, err)
	}
	defaultBasic, err := decimal.NewFromString(cfg.DefaultBasicSalary)
	if err != nil {
		return nil, fmt.Errorf("invalid default basic salary %q: %w", cfg.DefaultBasicSalary, err)
	}

	return &PayrollServiceImpl{
		db:                   db,
		PayrollRepository:    payrollRepo,
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		LeaveRepository:      leaveRepo,
		calendar:             calendar,
		notifier:             notifier,
		audits:               audits,
		rates:                Rates{OvertimeRatePerHour: overtimeRate, TaxRate: taxRate},
		defaultBasic:         defaultBasic,
		loc:                  loc,
		now:                  time.Now,
	}, nil
}

// periodRange returns the first and last day of the period month.
func (s *PayrollServiceImpl) periodRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// Generate implements payroll.PayrollService. Each employee is handled
// in its own transaction: one bad record does not abort the batch, it
// lands in the result's error list instead.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req *payroll.GeneratePayrollRequest) (*payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var employees []employee.Employee
	var err error
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.EmployeeRepository.GetByIDs(ctx, req.EmployeeIDs)
		if err != nil {
			return nil, err
		}
		if len(employees) != len(req.EmployeeIDs) {
			found := make(map[string]bool, len(employees))
			for _, emp := range employees {
				found[emp.ID] = true
			}
			for _, id := range req.EmployeeIDs {
				if !found[id] {
					return nil, fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, id)
				}
			}
		}
	} else {
		employees, err = s.EmployeeRepository.ListActive(ctx)
		if err != nil {
			return nil, err
		}
	}

	result := &payroll.GenerateResult{Payrolls: []payroll.PayrollResponse{}}

	for _, emp := range employees {
		p, genErr := s.generateOne(ctx, emp, req.PeriodMonth, req.PeriodYear, req.Regenerate)
		if genErr != nil {
			if errors.Is(genErr, payroll.ErrPayrollPeriodExists) {
				// An explicitly named employee must fail loudly; only
				// the all-active monthly run tolerates rows that were
				// already generated.
				if len(req.EmployeeIDs) > 0 {
					return nil, fmt.Errorf("%w: employee %s", payroll.ErrPayrollPeriodExists, emp.ID)
				}
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, payroll.GenerateError{
				EmployeeID: emp.ID,
				Reason:     genErr.Error(),
			})
			continue
		}
		result.Generated++
		result.Payrolls = append(result.Payrolls, toPayrollResponse(*p))
	}

	return result, nil
}

func (s *PayrollServiceImpl) generateOne(ctx context.Context, emp employee.Employee, month, year int, regenerate bool) (*payroll.Payroll, error) {
	existing, err := s.PayrollRepository.GetByEmployeePeriod(ctx, emp.ID, month, year)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !regenerate {
			return nil, payroll.ErrPayrollPeriodExists
		}
		if existing.Status != payroll.StatusDraft {
			return nil, payroll.ErrPayrollNotDraft
		}
	}

	start, end := s.periodRange(month, year)

	workDays, err := s.calendar.CountWorkDays(ctx, emp.Department, string(emp.Role), start, end)
	if err != nil {
		return nil, err
	}
	summary, err := s.AttendanceRepository.Summarize(ctx, emp.ID, start, end)
	if err != nil {
		return nil, err
	}
	leaveDays, err := s.LeaveRepository.ApprovedDaysBetween(ctx, emp.ID, start, end)
	if err != nil {
		return nil, err
	}

	basic := emp.BasicSalary
	if basic.IsZero() {
		basic = s.defaultBasic
	}

	facts := PeriodFacts{
		WorkDays:      workDays,
		AttendedDays:  summary.AttendedDays,
		PresentDays:   summary.PresentDays,
		LateDays:      summary.LateDays,
		LeaveDays:     leaveDays,
		OvertimeHours: summary.OvertimeHours,
	}
	breakdown := Calculate(basic, emp.Allowances, decimal.Zero, facts, s.rates)

	record := payroll.Payroll{
		EmployeeID:      emp.ID,
		PeriodMonth:     month,
		PeriodYear:      year,
		BasicSalary:     breakdown.BasicSalary,
		Allowances:      breakdown.Allowances,
		OvertimeHours:   breakdown.OvertimeHours,
		OvertimePay:     breakdown.OvertimePay,
		AbsencePenalty:  breakdown.AbsencePenalty,
		OtherDeductions: decimal.Zero,
		GrossSalary:     breakdown.GrossSalary,
		TaxAmount:       breakdown.TaxAmount,
		NetSalary:       breakdown.NetSalary,
		WorkDays:        facts.WorkDays,
		PresentDays:     facts.PresentDays,
		LateDays:        facts.LateDays,
		AbsentDays:      breakdown.AbsentDays,
		LeaveDays:       facts.LeaveDays,
		Status:          payroll.StatusDraft,
	}

	var created payroll.Payroll
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if existing != nil {
			if err := s.PayrollRepository.DeleteDraft(txCtx, existing.ID); err != nil {
				return err
			}
		}
		var createErr error
		created, createErr = s.PayrollRepository.Create(txCtx, record)
		return createErr
	})
	if err != nil {
		return nil, err
	}

	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.EmployeeCode

	s.notify(ctx, emp.ID, notification.TypePayrollGenerated,
		"Payroll generated",
		fmt.Sprintf("Your payroll draft for %02d/%d is ready", month, year),
		created.ID)

	return &created, nil
}

// GetByID implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (*payroll.PayrollResponse, error) {
	p, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPayrollResponse(p)
	return &resp, nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter *payroll.PayrollFilter) (*payroll.ListPayrollsResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	payrolls, total, err := s.PayrollRepository.List(ctx, *filter)
	if err != nil {
		return nil, err
	}

	resp := &payroll.ListPayrollsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Payrolls:   make([]payroll.PayrollResponse, 0, len(payrolls)),
	}
	for _, p := range payrolls {
		resp.Payrolls = append(resp.Payrolls, toPayrollResponse(p))
	}

	return resp, nil
}

// Finalize implements payroll.PayrollService. Only drafts can be
// finalized; the amounts are frozen from that point on.
func (s *PayrollServiceImpl) Finalize(ctx context.Context, id string) (*payroll.PayrollResponse, error) {
	p, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch p.Status {
	case payroll.StatusDraft:
	case payroll.StatusPaid:
		return nil, payroll.ErrPayrollImmutable
	default:
		return nil, payroll.ErrPayrollNotDraft
	}

	nowLocal := s.now().In(s.loc)
	p.Status = payroll.StatusFinalized
	p.FinalizedAt = &nowLocal

	if err := s.PayrollRepository.Update(ctx, p); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "payroll.finalize", p.ID, map[string]interface{}{
		"net_salary": p.NetSalary.StringFixed(2),
		"period":     fmt.Sprintf("%02d/%d", p.PeriodMonth, p.PeriodYear),
	})

	resp := toPayrollResponse(p)
	return &resp, nil
}

// MarkPaid implements payroll.PayrollService. Paid records are final:
// no further transition exists.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req *payroll.MarkPaidRequest) (*payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PayrollRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	switch p.Status {
	case payroll.StatusFinalized:
	case payroll.StatusPaid:
		return nil, payroll.ErrPayrollImmutable
	default:
		return nil, payroll.ErrPayrollNotFinalized
	}

	nowLocal := s.now().In(s.loc)
	paymentDate := nowLocal
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		d, err := time.ParseInLocation("2006-01-02", *req.PaymentDate, s.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid payment_date: %w", err)
		}
		paymentDate = d
	}

	p.Status = payroll.StatusPaid
	p.PaymentMethod = &req.PaymentMethod
	p.PaymentReference = req.PaymentReference
	p.PaymentDate = &paymentDate
	p.PaidAt = &nowLocal

	if err := s.PayrollRepository.Update(ctx, p); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "payroll.mark_paid", p.ID, map[string]interface{}{
		"payment_method": req.PaymentMethod,
		"payment_date":   paymentDate.Format("2006-01-02"),
	})

	s.notify(ctx, p.EmployeeID, notification.TypePayrollPaid,
		"Salary paid",
		fmt.Sprintf("Your salary for %02d/%d has been paid", p.PeriodMonth, p.PeriodYear),
		p.ID)

	resp := toPayrollResponse(p)
	return &resp, nil
}

func (s *PayrollServiceImpl) notify(ctx context.Context, recipientID string, typ notification.NotificationType, title, message, payrollID string) {
	n := notification.Notification{
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Reference:   &notification.Reference{Kind: notification.RefPayroll, ID: payrollID},
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to deliver payroll notification", "error", err)
	}
}

func (s *PayrollServiceImpl) recordAudit(ctx context.Context, action, payrollID string, detail map[string]interface{}) {
	actorID := ""
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if id, ok := claims["employee_id"].(string); ok {
			actorID = id
		}
	}

	entry := audit.Entry{
		ActorID:   actorID,
		Action:    action,
		Reference: audit.Reference{Kind: audit.RefPayroll, ID: payrollID},
		Detail:    detail,
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to record audit entry", "action", action, "error", err)
	}
}

func timePtrToDateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func toPayrollResponse(p payroll.Payroll) payroll.PayrollResponse {
	return payroll.PayrollResponse{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		EmployeeName:     p.EmployeeName,
		EmployeeCode:     p.EmployeeCode,
		PeriodMonth:      p.PeriodMonth,
		PeriodYear:       p.PeriodYear,
		BasicSalary:      p.BasicSalary.StringFixed(2),
		Allowances:       p.Allowances.StringFixed(2),
		OvertimeHours:    p.OvertimeHours.StringFixed(2),
		OvertimePay:      p.OvertimePay.StringFixed(2),
		AbsencePenalty:   p.AbsencePenalty.StringFixed(2),
		OtherDeductions:  p.OtherDeductions.StringFixed(2),
		GrossSalary:      p.GrossSalary.StringFixed(2),
		TaxAmount:        p.TaxAmount.StringFixed(2),
		NetSalary:        p.NetSalary.StringFixed(2),
		WorkDays:         p.WorkDays,
		PresentDays:      p.PresentDays,
		LateDays:         p.LateDays,
		AbsentDays:       p.AbsentDays,
		LeaveDays:        p.LeaveDays,
		Status:           string(p.Status),
		PaymentMethod:    p.PaymentMethod,
		PaymentReference: p.PaymentReference,
		PaymentDate:      timePtrToDateString(p.PaymentDate),
		FinalizedAt:      timePtrToString(p.FinalizedAt),
		PaidAt:           timePtrToString(p.PaidAt),
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
}
