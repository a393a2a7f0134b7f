package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/holiday"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
)

// WorkdayCalendar counts expected working days in a period, combining
// the applicable work period's weekly pattern with the holiday table.
// Without an applicable period the pattern defaults to Monday-Friday.
type WorkdayCalendar struct {
	workPeriods workperiod.WorkPeriodService
	holidays    holiday.HolidayRepository
}

func NewWorkdayCalendar(workPeriods workperiod.WorkPeriodService, holidays holiday.HolidayRepository) *WorkdayCalendar {
	return &WorkdayCalendar{workPeriods: workPeriods, holidays: holidays}
}

// CountWorkDays returns the number of expected working days for an
// employee scope in [start, end], endpoints inclusive. Holidays that
// cover the scope and block attendance are excluded.
func (c *WorkdayCalendar) CountWorkDays(ctx context.Context, department, role string, start, end time.Time) (int, error) {
	var wp *workperiod.WorkPeriod
	resolved, err := c.workPeriods.Resolve(ctx, department, start)
	if err != nil && !errors.Is(err, workperiod.ErrNoApplicablePeriod) {
		return 0, err
	}
	wp = resolved

	holidays, err := c.holidays.ListBetween(ctx, start, end)
	if err != nil {
		return 0, err
	}

	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !isWorkday(wp, day.Weekday()) {
			continue
		}
		if isBlockedHoliday(holidays, day, department, role) {
			continue
		}
		count++
	}

	return count, nil
}

func isWorkday(wp *workperiod.WorkPeriod, weekday time.Weekday) bool {
	if wp != nil {
		return wp.IsWorkday(weekday)
	}
	return weekday != time.Saturday && weekday != time.Sunday
}

func isBlockedHoliday(holidays []holiday.Holiday, day time.Time, department, role string) bool {
	for _, h := range holidays {
		if h.Covers(day) && h.AppliesTo(department, role) && !h.AllowAttendance {
			return true
		}
	}
	return false
}
