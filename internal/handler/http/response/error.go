package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/auth"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/holiday"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/leave"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/notification"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/payroll"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/schedule"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/face"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/geo"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
	"github.com/omanjaya/sistem-absensi-manufac/internal/service/workflow"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var batchErr *workflow.BatchValidationError
	if errors.As(err, &batchErr) {
		details := make(map[string]string, len(batchErr.Items))
		for _, item := range batchErr.Items {
			details[item.ID] = item.Reason
		}
		ValidationError(w, details)
		return
	}

	var outOfRange *geo.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, outOfRange.Error(), map[string]string{
			"distance_meters": strconv.FormatFloat(outOfRange.DistanceMeters, 'f', 0, 64),
			"allowed_radius":  strconv.FormatFloat(outOfRange.AllowedRadius, 'f', 0, 64),
		})
		return
	}

	var conflict *schedule.ConflictError
	if errors.As(err, &conflict) {
		Conflict(w, conflict.Error())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, err.Error())

	// Employees
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrEmailAlreadyUsed),
		errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrFaceNotRegistered):
		BadRequest(w, err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrInvalidEventType),
		errors.Is(err, attendance.ErrHolidayToday):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrIdentityMismatch):
		Forbidden(w, err.Error())

	// Face recognition
	case errors.Is(err, face.ErrNotRecognized):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, face.ErrServiceUnavailable):
		ServiceUnavailable(w, err.Error())

	// Leaves
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveOverlaps),
		errors.Is(err, leave.ErrLeaveNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrLeaveNotOwned):
		Forbidden(w, err.Error())

	// Payroll
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, payroll.ErrPayrollPeriodExists),
		errors.Is(err, payroll.ErrPayrollNotDraft),
		errors.Is(err, payroll.ErrPayrollNotFinalized),
		errors.Is(err, payroll.ErrPayrollImmutable):
		Conflict(w, err.Error())

	// Schedules and work periods
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, workperiod.ErrWorkPeriodNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, workperiod.ErrNoApplicablePeriod):
		BadRequest(w, err.Error(), nil)

	// Holidays
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, holiday.ErrHolidayOverlaps):
		Conflict(w, err.Error())

	// Notifications
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
