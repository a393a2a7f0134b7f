package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/holiday"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/leave"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/notification"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
)

// AttendanceJobs closes out each attendance day. After the day ends,
// every active employee who was expected to work but never clocked in
// gets an absent record, so payroll summaries see explicit absences
// instead of missing rows.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRepository
	workPeriods    workperiod.WorkPeriodService
	holidays       holiday.HolidayService
	notifier       notification.NotificationService
	loc            *time.Location
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	workPeriods workperiod.WorkPeriodService,
	holidays holiday.HolidayService,
	notifier notification.NotificationService,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		workPeriods:    workPeriods,
		holidays:       holidays,
		notifier:       notifier,
		loc:            loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees runs hourly but only acts in the first hour of
// the local day, closing out the previous day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	if time.Now().In(j.loc).Hour() != 0 {
		return nil
	}

	yesterday := time.Now().In(j.loc).AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, j.loc)

	return j.CloseDay(ctx, day)
}

// CloseDay marks every active employee without a record on the given
// day as absent, unless the day was not a workday for them or they
// were on approved leave.
func (j *AttendanceJobs) CloseDay(ctx context.Context, day time.Time) error {
	slog.InfoContext(ctx, "closing attendance day", "date", day.Format("2006-01-02"))

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	recorded, err := j.attendanceRepo.EmployeeIDsWithRecordOn(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list recorded employees: %w", err)
	}
	onLeave, err := j.leaveRepo.EmployeeIDsOnApprovedLeave(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to list employees on leave: %w", err)
	}

	skip := make(map[string]struct{}, len(recorded)+len(onLeave))
	for _, id := range recorded {
		skip[id] = struct{}{}
	}
	for _, id := range onLeave {
		skip[id] = struct{}{}
	}

	marked := 0
	for _, emp := range employees {
		if _, ok := skip[emp.ID]; ok {
			continue
		}

		expected, err := j.expectedToWork(ctx, emp, day)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve workday",
				"employee_id", emp.ID, "date", day.Format("2006-01-02"), "error", err)
			continue
		}
		if !expected {
			continue
		}

		_, err = j.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       day,
			Status:     attendance.StatusAbsent,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				continue
			}
			slog.ErrorContext(ctx, "failed to create absence record",
				"employee_id", emp.ID, "date", day.Format("2006-01-02"), "error", err)
			continue
		}
		marked++

		if notifyErr := j.notifier.Notify(ctx, notification.Notification{
			RecipientID: emp.ID,
			Type:        notification.TypeAttendanceAbsent,
			Title:       "Marked Absent",
			Message:     fmt.Sprintf("You were marked absent for %s. Contact HR if this is incorrect.", day.Format("2006-01-02")),
		}); notifyErr != nil {
			slog.WarnContext(ctx, "failed to send absence notification",
				"employee_id", emp.ID, "error", notifyErr)
		}
	}

	slog.InfoContext(ctx, "attendance day closed",
		"date", day.Format("2006-01-02"), "marked_absent", marked)
	return nil
}

func (j *AttendanceJobs) expectedToWork(ctx context.Context, emp employee.Employee, day time.Time) (bool, error) {
	blocked, err := j.holidays.IsNonWorkingDay(ctx, day, emp.Department, string(emp.Role))
	if err != nil {
		return false, err
	}
	if blocked {
		return false, nil
	}

	wp, err := j.workPeriods.Resolve(ctx, emp.Department, day)
	if err != nil {
		if errors.Is(err, workperiod.ErrNoApplicablePeriod) {
			// No period configured: default working week.
			wd := day.Weekday()
			return wd != time.Saturday && wd != time.Sunday, nil
		}
		return false, err
	}

	return wp.IsWorkday(day.Weekday()), nil
}
