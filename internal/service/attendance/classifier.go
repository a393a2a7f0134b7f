package attendance

import (
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
)

// Window is the expected presence window for one day, expressed as
// minutes since local midnight.
type Window struct {
	StartMinutes         int
	EndMinutes           int
	LateToleranceMinutes int
	EarlyLeaveMinutes    int
}

// minuteOfDay converts a timestamp to whole minutes since local midnight.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DeriveStatus classifies an attendance record from its clock times
// against the day's window.
//
// Lateness is measured from the scheduled start, not from the tolerance
// boundary: arriving 20 minutes after start with a 15 minute tolerance
// is 20 late minutes, not 5. A late arrival stays late even when the
// employee also leaves early; leaving early only demotes an otherwise
// present day to partial. A missing clock-out contributes no early
// leave minutes.
func DeriveStatus(clockIn time.Time, clockOut *time.Time, w Window) (status attendance.Status, lateMinutes, earlyLeaveMinutes int) {
	status = attendance.StatusPresent

	inMin := minuteOfDay(clockIn)
	if inMin > w.StartMinutes+w.LateToleranceMinutes {
		status = attendance.StatusLate
		lateMinutes = inMin - w.StartMinutes
	}

	if clockOut != nil {
		outMin := minuteOfDay(*clockOut)
		if outMin < w.EndMinutes-w.EarlyLeaveMinutes {
			earlyLeaveMinutes = w.EndMinutes - outMin
			if status == attendance.StatusPresent {
				status = attendance.StatusPartial
			}
		}
	}

	return status, lateMinutes, earlyLeaveMinutes
}
