package workperiod

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayWindow is the expected presence window for one weekday.
type DayWindow struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"` // HH:MM
	End     string `json:"end"`   // HH:MM
}

// BreakWindow is an unpaid break inside the work window.
type BreakWindow struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// OvertimeSettings controls overtime accrual for the period.
type OvertimeSettings struct {
	Enabled        bool            `json:"enabled"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	MaxHoursPerDay int             `json:"max_hours_per_day"`
}

// WorkPeriod is a named work calendar. Schedule keys are weekday numbers
// 0 (Sunday) through 6 (Saturday), stored as JSONB.
type WorkPeriod struct {
	ID                   string
	Name                 string
	Schedule             map[string]DayWindow
	Breaks               []BreakWindow
	LateToleranceMinutes int
	EarlyLeaveMinutes    int
	Overtime             OvertimeSettings
	Departments          []string
	EffectiveFrom        time.Time
	EffectiveTo          *time.Time
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// WindowFor returns the presence window for a weekday, if the weekday is
// a working day under this period.
func (w WorkPeriod) WindowFor(weekday time.Weekday) (DayWindow, bool) {
	dw, ok := w.Schedule[weekdayKey(weekday)]
	if !ok || !dw.Enabled {
		return DayWindow{}, false
	}
	return dw, true
}

// IsWorkday reports whether the weekday has an enabled window.
func (w WorkPeriod) IsWorkday(weekday time.Weekday) bool {
	_, ok := w.WindowFor(weekday)
	return ok
}

// AppliesTo reports whether the period covers the department on date.
func (w WorkPeriod) AppliesTo(department string, date time.Time) bool {
	if !w.IsActive {
		return false
	}
	if date.Before(w.EffectiveFrom) {
		return false
	}
	if w.EffectiveTo != nil && date.After(*w.EffectiveTo) {
		return false
	}
	if len(w.Departments) == 0 {
		return true
	}
	for _, d := range w.Departments {
		if d == department {
			return true
		}
	}
	return false
}

// BreakMinutesWithin returns the total break minutes overlapping the
// span [start, end] expressed as minutes since midnight.
func (w WorkPeriod) BreakMinutesWithin(startMin, endMin int) int {
	total := 0
	for _, b := range w.Breaks {
		bs, ok1 := ParseMinutes(b.Start)
		be, ok2 := ParseMinutes(b.End)
		if !ok1 || !ok2 {
			continue
		}
		lo := max(startMin, bs)
		hi := min(endMin, be)
		if hi > lo {
			total += hi - lo
		}
	}
	return total
}

// ParseMinutes converts "HH:MM" to minutes since midnight.
func ParseMinutes(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func weekdayKey(d time.Weekday) string {
	return [...]string{"0", "1", "2", "3", "4", "5", "6"}[int(d)]
}
