package schedule

import (
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/schedule"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
)

// Overlaps reports whether two HH:MM intervals on the same weekday
// collide. Intervals are half-open: a shift ending 12:00 and one
// starting 12:00 share a boundary, not time.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	a1, ok1 := workperiod.ParseMinutes(aStart)
	a2, ok2 := workperiod.ParseMinutes(aEnd)
	b1, ok3 := workperiod.ParseMinutes(bStart)
	b2, ok4 := workperiod.ParseMinutes(bEnd)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return a1 < b2 && b1 < a2
}

// findConflict returns the first existing schedule colliding with the
// candidate interval, or nil.
func findConflict(existing []schedule.Schedule, startTime, endTime string) *schedule.Schedule {
	for i := range existing {
		if Overlaps(startTime, endTime, existing[i].StartTime, existing[i].EndTime) {
			return &existing[i]
		}
	}
	return nil
}
