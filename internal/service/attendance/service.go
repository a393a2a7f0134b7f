package attendance

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
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/holiday"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/notification"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/geo"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/storage"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
	"github.com/omanjaya/sistem-absensi-manufac/internal/service/identity"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	workPeriods workperiod.WorkPeriodService
	holidays    holiday.HolidayService
	gate        *identity.Gate
	photos      storage.PhotoStore
	notifier    notification.NotificationService
	audits      audit.AuditRepository
	cfg         config.AttendanceConfig
	loc         *time.Location

	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	workPeriods workperiod.WorkPeriodService,
	holidays holiday.HolidayService,
	gate *identity.Gate,
	photos storage.PhotoStore,
	notifier notification.NotificationService,
	audits audit.AuditRepository,
	cfg config.AttendanceConfig,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		workPeriods:          workPeriods,
		holidays:             holidays,
		gate:                 gate,
		photos:               photos,
		notifier:             notifier,
		audits:               audits,
		cfg:                  cfg,
		loc:                  loc,
		now:                  time.Now,
	}
}

// employeeFromContext resolves the authenticated employee from the JWT
// claims chi/jwtauth stored in the request context.
func (s *AttendanceServiceImpl) employeeFromContext(ctx context.Context) (employee.Employee, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return employee.Employee{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.Status != employee.StatusActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}

	return emp, nil
}

// windowFor builds the day's classification window from the employee's
// work period, falling back to the configured default when none applies.
func (s *AttendanceServiceImpl) windowFor(ctx context.Context, department string, date time.Time) (Window, *workperiod.WorkPeriod, error) {
	w := Window{
		LateToleranceMinutes: s.cfg.LateToleranceMinutes,
		EarlyLeaveMinutes:    s.cfg.EarlyLeaveMinutes,
	}
	startMin, ok := workperiod.ParseMinutes(s.cfg.WorkStart)
	if !ok {
		return Window{}, nil, fmt.Errorf("invalid configured work start %q", s.cfg.WorkStart)
	}
	endMin, ok := workperiod.ParseMinutes(s.cfg.WorkEnd)
	if !ok {
		return Window{}, nil, fmt.Errorf("invalid configured work end %q", s.cfg.WorkEnd)
	}
	w.StartMinutes = startMin
	w.EndMinutes = endMin

	wp, err := s.workPeriods.Resolve(ctx, department, date)
	if err != nil {
		if errors.Is(err, workperiod.ErrNoApplicablePeriod) {
			return w, nil, nil
		}
		return Window{}, nil, err
	}

	if dw, ok := wp.WindowFor(date.Weekday()); ok {
		if m, ok := workperiod.ParseMinutes(dw.Start); ok {
			w.StartMinutes = m
		}
		if m, ok := workperiod.ParseMinutes(dw.End); ok {
			w.EndMinutes = m
		}
	}
	w.LateToleranceMinutes = wp.LateToleranceMinutes
	w.EarlyLeaveMinutes = wp.EarlyLeaveMinutes

	return w, wp, nil
}

func (s *AttendanceServiceImpl) fence() geo.Fence {
	return geo.Fence{
		Center: geo.Point{Latitude: s.cfg.OfficeLatitude, Longitude: s.cfg.OfficeLongitude},
		Radius: s.cfg.OfficeRadiusMeters,
	}
}

// ClockEvent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockEvent(ctx context.Context, req *attendance.ClockEventRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	switch attendance.EventType(req.Type) {
	case attendance.EventClockIn:
		return s.clockIn(ctx, emp, req)
	case attendance.EventClockOut:
		return s.clockOut(ctx, emp, req)
	default:
		return nil, attendance.ErrInvalidEventType
	}
}

func (s *AttendanceServiceImpl) clockIn(ctx context.Context, emp employee.Employee, req *attendance.ClockEventRequest) (*attendance.AttendanceResponse, error) {
	nowLocal := s.now().In(s.loc)
	date := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, s.loc)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, attendance.ErrAlreadyClockedIn
	}

	blocked, err := s.holidays.IsNonWorkingDay(ctx, date, emp.Department, string(emp.Role))
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, attendance.ErrHolidayToday
	}

	if !emp.FaceRegistered {
		return nil, employee.ErrFaceNotRegistered
	}

	// Identity before location: a photo of someone else is rejected even
	// from inside the office.
	confidence, err := s.gate.Verify(ctx, emp.ID, req.Photo)
	if err != nil {
		return nil, err
	}

	if err := s.fence().Validate(geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}); err != nil {
		return nil, err
	}

	window, _, err := s.windowFor(ctx, emp.Department, date)
	if err != nil {
		return nil, err
	}
	status, lateMinutes, _ := DeriveStatus(nowLocal, nil, window)

	photoKey := fmt.Sprintf("%s/%s-in", emp.ID, date.Format("2006-01-02"))
	photoPath, err := s.photos.Save(ctx, photoKey, req.Photo)
	if err != nil {
		return nil, fmt.Errorf("failed to store clock-in photo: %w", err)
	}

	att := attendance.Attendance{
		EmployeeID:       emp.ID,
		Date:             date,
		ClockIn:          &nowLocal,
		ClockInLatitude:  req.Latitude,
		ClockInLongitude: req.Longitude,
		ClockInPhotoPath: &photoPath,
		FaceConfidence:   &confidence,
		Status:           status,
		LateMinutes:      lateMinutes,
		WorkHours:        decimal.Zero,
		OvertimeHours:    decimal.Zero,
		Notes:            req.Notes,
	}

	created, err := s.AttendanceRepository.Create(ctx, att)
	if err != nil {
		return nil, err
	}
	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.EmployeeCode

	s.notify(ctx, emp.ID, notification.TypeAttendanceClockIn,
		"Clocked in",
		fmt.Sprintf("Clock-in recorded at %s (%s)", nowLocal.Format("15:04"), status),
		created.ID)

	resp := toAttendanceResponse(created)
	return &resp, nil
}

func (s *AttendanceServiceImpl) clockOut(ctx context.Context, emp employee.Employee, req *attendance.ClockEventRequest) (*attendance.AttendanceResponse, error) {
	nowLocal := s.now().In(s.loc)
	date := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, s.loc)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.ClockIn == nil {
		return nil, attendance.ErrNotClockedIn
	}
	if existing.ClockOut != nil {
		return nil, attendance.ErrAlreadyClockedOut
	}

	confidence, err := s.gate.Verify(ctx, emp.ID, req.Photo)
	if err != nil {
		return nil, err
	}

	if err := s.fence().Validate(geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}); err != nil {
		return nil, err
	}

	window, wp, err := s.windowFor(ctx, emp.Department, date)
	if err != nil {
		return nil, err
	}

	clockIn := existing.ClockIn.In(s.loc)
	status, lateMinutes, earlyLeaveMinutes := DeriveStatus(clockIn, &nowLocal, window)
	workHours, overtimeHours := s.computeHours(clockIn, nowLocal, wp)

	photoKey := fmt.Sprintf("%s/%s-out", emp.ID, date.Format("2006-01-02"))
	photoPath, err := s.photos.Save(ctx, photoKey, req.Photo)
	if err != nil {
		return nil, fmt.Errorf("failed to store clock-out photo: %w", err)
	}

	existing.ClockOut = &nowLocal
	existing.ClockOutLatitude = req.Latitude
	existing.ClockOutLongitude = req.Longitude
	existing.ClockOutPhotoPath = &photoPath
	existing.Status = status
	existing.LateMinutes = lateMinutes
	existing.EarlyLeaveMinutes = earlyLeaveMinutes
	existing.WorkHours = workHours
	existing.OvertimeHours = overtimeHours
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if existing.FaceConfidence == nil || confidence < *existing.FaceConfidence {
		existing.FaceConfidence = &confidence
	}

	if err := s.AttendanceRepository.Update(ctx, *existing); err != nil {
		return nil, err
	}
	existing.EmployeeName = &emp.FullName
	existing.EmployeeCode = &emp.EmployeeCode

	s.notify(ctx, emp.ID, notification.TypeAttendanceClockOut,
		"Clocked out",
		fmt.Sprintf("Clock-out recorded at %s, %s work hours", nowLocal.Format("15:04"), workHours.StringFixed(2)),
		existing.ID)

	resp := toAttendanceResponse(*existing)
	return &resp, nil
}

// computeHours returns net work hours and credited overtime hours for a
// completed day. Breaks defined by the work period are unpaid and come
// off the total; overtime beyond the standard day is capped and weighted
// by the period's multiplier.
func (s *AttendanceServiceImpl) computeHours(clockIn, clockOut time.Time, wp *workperiod.WorkPeriod) (work, overtime decimal.Decimal) {
	inMin := minuteOfDay(clockIn)
	outMin := minuteOfDay(clockOut)
	if outMin <= inMin {
		return decimal.Zero, decimal.Zero
	}

	workMinutes := outMin - inMin
	if wp != nil {
		workMinutes -= wp.BreakMinutesWithin(inMin, outMin)
		if workMinutes < 0 {
			workMinutes = 0
		}
	}

	work = decimal.NewFromInt(int64(workMinutes)).Div(decimal.NewFromInt(60)).Round(2)

	standard := decimal.NewFromInt(int64(s.cfg.StandardWorkHours))
	overtime = work.Sub(standard)
	if overtime.IsNegative() {
		return work, decimal.Zero
	}

	if wp != nil {
		if !wp.Overtime.Enabled {
			return work, decimal.Zero
		}
		if wp.Overtime.MaxHoursPerDay > 0 {
			maxOvertime := decimal.NewFromInt(int64(wp.Overtime.MaxHoursPerDay))
			if overtime.GreaterThan(maxOvertime) {
				overtime = maxOvertime
			}
		}
		if wp.Overtime.Multiplier.IsPositive() {
			overtime = overtime.Mul(wp.Overtime.Multiplier).Round(2)
		}
	}

	return work, overtime
}

func (s *AttendanceServiceImpl) notify(ctx context.Context, recipientID string, typ notification.NotificationType, title, message, attendanceID string) {
	n := notification.Notification{
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
		Reference:   &notification.Reference{Kind: notification.RefAttendance, ID: attendanceID},
	}
	// Delivery is best effort; a failed notification never fails the
	// clock event.
	if err := s.notifier.Notify(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to deliver attendance notification", "error", err)
	}
}

// TodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayStatus(ctx context.Context) (*attendance.TodayStatusResponse, error) {
	emp, err := s.employeeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	nowLocal := s.now().In(s.loc)
	date := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, s.loc)

	att, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return nil, err
	}

	resp := &attendance.TodayStatusResponse{
		Date:      date.Format("2006-01-02"),
		WorkStart: s.cfg.WorkStart,
		WorkEnd:   s.cfg.WorkEnd,
	}

	if wp, err := s.workPeriods.Resolve(ctx, emp.Department, date); err == nil {
		if dw, ok := wp.WindowFor(date.Weekday()); ok {
			resp.WorkStart = dw.Start
			resp.WorkEnd = dw.End
		}
	}

	if att != nil {
		att.EmployeeName = &emp.FullName
		att.EmployeeCode = &emp.EmployeeCode
		r := toAttendanceResponse(*att)
		resp.TodayAttendance = &r
		resp.HasClockedIn = att.ClockIn != nil
		resp.HasClockedOut = att.ClockOut != nil
	}
	resp.CanClockIn = !resp.HasClockedIn
	resp.CanClockOut = resp.HasClockedIn && !resp.HasClockedOut

	return resp, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter *attendance.AttendanceFilter) (*attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	attendances, total, err := s.AttendanceRepository.List(ctx, *filter)
	if err != nil {
		return nil, err
	}

	resp := &attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Attendances: make([]attendance.AttendanceResponse, 0, len(attendances)),
	}
	for _, att := range attendances {
		resp.Attendances = append(resp.Attendances, toAttendanceResponse(att))
	}

	return resp, nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (*attendance.AttendanceResponse, error) {
	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toAttendanceResponse(att)
	return &resp, nil
}

// Update implements attendance.AttendanceService. Corrected clock times
// always re-derive the status; an admin cannot hand-pick one.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req *attendance.UpdateAttendanceRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, att.EmployeeID)
	if err != nil {
		return nil, err
	}

	detail := map[string]interface{}{}

	if req.ClockIn != nil && *req.ClockIn != "" {
		t, err := time.Parse(time.RFC3339, *req.ClockIn)
		if err != nil {
			return nil, fmt.Errorf("invalid clock_in timestamp: %w", err)
		}
		local := t.In(s.loc)
		detail["clock_in"] = map[string]interface{}{"from": timeOrNil(att.ClockIn), "to": local}
		att.ClockIn = &local
	}
	if req.ClockOut != nil && *req.ClockOut != "" {
		t, err := time.Parse(time.RFC3339, *req.ClockOut)
		if err != nil {
			return nil, fmt.Errorf("invalid clock_out timestamp: %w", err)
		}
		local := t.In(s.loc)
		detail["clock_out"] = map[string]interface{}{"from": timeOrNil(att.ClockOut), "to": local}
		att.ClockOut = &local
	}
	if req.Notes != nil {
		att.Notes = req.Notes
	}

	// A corrected record must stay chronologically sane: clock-out
	// without a clock-in, or before it, is never persisted.
	if att.ClockOut != nil {
		if att.ClockIn == nil {
			return nil, validator.ValidationErrors{{
				Field:   "clock_out",
				Message: "clock_out requires a clock_in",
			}}
		}
		if att.ClockOut.Before(*att.ClockIn) {
			return nil, validator.ValidationErrors{{
				Field:   "clock_out",
				Message: "clock_out must not be earlier than clock_in",
			}}
		}
	}

	if att.ClockIn != nil {
		window, wp, err := s.windowFor(ctx, emp.Department, att.Date)
		if err != nil {
			return nil, err
		}
		att.Status, att.LateMinutes, att.EarlyLeaveMinutes = DeriveStatus(att.ClockIn.In(s.loc), att.ClockOut, window)
		if att.ClockOut != nil {
			att.WorkHours, att.OvertimeHours = s.computeHours(att.ClockIn.In(s.loc), att.ClockOut.In(s.loc), wp)
		} else {
			att.WorkHours = decimal.Zero
			att.OvertimeHours = decimal.Zero
		}
	}

	if err := s.AttendanceRepository.Update(ctx, att); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, "attendance.update", att.ID, detail)

	resp := toAttendanceResponse(att)
	return &resp, nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.AttendanceRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.recordAudit(ctx, "attendance.delete", id, map[string]interface{}{
		"employee_id": att.EmployeeID,
		"date":        att.Date.Format("2006-01-02"),
	})

	return nil
}

func (s *AttendanceServiceImpl) recordAudit(ctx context.Context, action, attendanceID string, detail map[string]interface{}) {
	actorID := ""
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		if id, ok := claims["employee_id"].(string); ok {
			actorID = id
		}
	}

	entry := audit.Entry{
		ActorID:   actorID,
		Action:    action,
		Reference: audit.Reference{Kind: audit.RefAttendance, ID: attendanceID},
		Detail:    detail,
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to record audit entry", "action", action, "error", err)
	}
}

func timeOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Date:              att.Date.Format("2006-01-02"),
		ClockIn:           timePtrToString(att.ClockIn),
		ClockOut:          timePtrToString(att.ClockOut),
		ClockInLatitude:   att.ClockInLatitude,
		ClockInLongitude:  att.ClockInLongitude,
		ClockOutLatitude:  att.ClockOutLatitude,
		ClockOutLongitude: att.ClockOutLongitude,
		ClockInPhotoPath:  att.ClockInPhotoPath,
		ClockOutPhotoPath: att.ClockOutPhotoPath,
		FaceConfidence:    att.FaceConfidence,
		Status:            string(att.Status),
		LateMinutes:       att.LateMinutes,
		EarlyLeaveMinutes: att.EarlyLeaveMinutes,
		WorkHours:         att.WorkHours.StringFixed(2),
		OvertimeHours:     att.OvertimeHours.StringFixed(2),
		Notes:             att.Notes,
		CreatedAt:         att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         att.UpdatedAt.Format(time.RFC3339),
	}
}
