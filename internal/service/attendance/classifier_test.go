package attendance

import (
	"testing"
	"time"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

// 08:00-17:00, 15 minute late tolerance, 30 minute early leave threshold.
var standardWindow = Window{
	StartMinutes:         8 * 60,
	EndMinutes:           17 * 60,
	LateToleranceMinutes: 15,
	EarlyLeaveMinutes:    30,
}

func clock(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func clockPtr(hour, minute int) *time.Time {
	t := clock(hour, minute)
	return &t
}

func TestDeriveStatus_OnTimeFullDay(t *testing.T) {
	status, late, early := DeriveStatus(clock(7, 55), clockPtr(17, 5), standardWindow)

	assert.Equal(t, attendance.StatusPresent, status)
	assert.Equal(t, 0, late)
	assert.Equal(t, 0, early)
}

func TestDeriveStatus_WithinTolerance(t *testing.T) {
	// 08:15 is exactly the tolerance boundary and still counts on time.
	status, late, _ := DeriveStatus(clock(8, 15), clockPtr(17, 0), standardWindow)

	assert.Equal(t, attendance.StatusPresent, status)
	assert.Equal(t, 0, late)
}

func TestDeriveStatus_LateMeasuredFromStart(t *testing.T) {
	status, late, _ := DeriveStatus(clock(8, 20), clockPtr(17, 0), standardWindow)

	assert.Equal(t, attendance.StatusLate, status)
	assert.Equal(t, 20, late)
}

func TestDeriveStatus_EarlyLeaveDemotesToPartial(t *testing.T) {
	status, late, early := DeriveStatus(clock(8, 0), clockPtr(16, 0), standardWindow)

	assert.Equal(t, attendance.StatusPartial, status)
	assert.Equal(t, 0, late)
	assert.Equal(t, 60, early)
}

func TestDeriveStatus_EarlyLeaveBoundaryIsNotPartial(t *testing.T) {
	// 16:30 is exactly end minus threshold; the record stays present.
	status, _, early := DeriveStatus(clock(8, 0), clockPtr(16, 30), standardWindow)

	assert.Equal(t, attendance.StatusPresent, status)
	assert.Equal(t, 0, early)
}

func TestDeriveStatus_LateWinsOverPartial(t *testing.T) {
	status, late, early := DeriveStatus(clock(9, 0), clockPtr(15, 0), standardWindow)

	assert.Equal(t, attendance.StatusLate, status)
	assert.Equal(t, 60, late)
	assert.Equal(t, 120, early)
}

func TestDeriveStatus_NoClockOut(t *testing.T) {
	status, late, early := DeriveStatus(clock(8, 10), nil, standardWindow)

	assert.Equal(t, attendance.StatusPresent, status)
	assert.Equal(t, 0, late)
	assert.Equal(t, 0, early)
}
