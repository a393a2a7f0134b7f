package attendance

import (
	"strings"

	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
)

// ClockEventRequest is a clock-in or clock-out submission. The photo is
// a base64 image checked against the face recognition service.
type ClockEventRequest struct {
	Type      string   `json:"type"`
	Photo     string   `json:"photo"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r *ClockEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != string(EventClockIn) && r.Type != string(EventClockOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be 'clock_in' or 'clock_out'",
		})
	}

	if validator.IsEmpty(r.Photo) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo is required",
		})
	}

	// Missing coordinates are rejected here so the geofence never has
	// to guess; a device that sends no location cannot clock in.
	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	ClockIn           *string  `json:"clock_in,omitempty"`
	ClockOut          *string  `json:"clock_out,omitempty"`
	ClockInLatitude   *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64 `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
	ClockInPhotoPath  *string  `json:"clock_in_photo_path,omitempty"`
	ClockOutPhotoPath *string  `json:"clock_out_photo_path,omitempty"`
	FaceConfidence    *float64 `json:"face_confidence,omitempty"`
	Status            string   `json:"status"`
	LateMinutes       int      `json:"late_minutes"`
	EarlyLeaveMinutes int      `json:"early_leave_minutes"`
	WorkHours         string   `json:"work_hours"`
	OvertimeHours     string   `json:"overtime_hours"`
	Notes             *string  `json:"notes,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, clock_in, clock_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, late, partial, absent",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "clock_in", "clock_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, clock_in, clock_out, status",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// UpdateAttendanceRequest lets admins correct a record when an employee
// forgot to clock out or a device reported wrong data. Status is always
// re-derived from the corrected times.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	ClockIn  *string `json:"clock_in,omitempty"`  // RFC3339
	ClockOut *string `json:"clock_out,omitempty"` // RFC3339
	Notes    *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockIn != nil && *r.ClockIn != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp",
			})
		}
	}

	if r.ClockOut != nil && *r.ClockOut != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an RFC3339 timestamp",
			})
		}
	}

	if r.ClockIn == nil && r.ClockOut == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TodayStatusResponse tells a client what clock actions are available.
type TodayStatusResponse struct {
	Date            string              `json:"date"`
	HasClockedIn    bool                `json:"has_clocked_in"`
	HasClockedOut   bool                `json:"has_clocked_out"`
	CanClockIn      bool                `json:"can_clock_in"`
	CanClockOut     bool                `json:"can_clock_out"`
	TodayAttendance *AttendanceResponse `json:"today_attendance,omitempty"`
	WorkStart       string              `json:"work_start"`
	WorkEnd         string              `json:"work_end"`
}
