package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/config"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/attendance"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/audit"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/holiday"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/notification"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/workperiod"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/face"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/validator"
	"github.com/omanjaya/sistem-absensi-manufac/internal/service/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo keeps one record per employee-day, enforcing the
// same uniqueness the database does.
type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	byDay map[string]*attendance.Attendance
	byID  map[string]attendance.Attendance

	updated []attendance.Attendance

	// missNextGet simulates a concurrent insert: the duplicate check
	// sees no row, the unique index still rejects the create.
	missNextGet bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		byDay: map[string]*attendance.Attendance{},
		byID:  map[string]attendance.Attendance{},
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if f.missNextGet {
		f.missNextGet = false
		return nil, nil
	}
	if att, ok := f.byDay[dayKey(employeeID, date)]; ok {
		copied := *att
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := dayKey(att.EmployeeID, att.Date)
	if _, ok := f.byDay[key]; ok {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
	}
	att.ID = "att-" + key
	f.byDay[key] = &att
	f.byID[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	f.updated = append(f.updated, att)
	f.byDay[dayKey(att.EmployeeID, att.Date)] = &att
	f.byID[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	emp employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if id != f.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

type fakeWorkPeriods struct{ workperiod.WorkPeriodService }

func (fakeWorkPeriods) Resolve(_ context.Context, _ string, _ time.Time) (*workperiod.WorkPeriod, error) {
	return nil, workperiod.ErrNoApplicablePeriod
}

type fakeHolidays struct{ holiday.HolidayService }

func (fakeHolidays) IsNonWorkingDay(_ context.Context, _ time.Time, _, _ string) (bool, error) {
	return false, nil
}

type fakeRecognizer struct{ userID string }

func (f fakeRecognizer) Recognize(_ context.Context, _ string) (*face.Recognition, error) {
	return &face.Recognition{UserID: f.userID, Confidence: 0.97}, nil
}

type fakePhotoStore struct{}

func (fakePhotoStore) Save(_ context.Context, key string, _ string) (string, error) {
	return "photos/" + key + ".jpg", nil
}

func (fakePhotoStore) Delete(_ context.Context, _ string) error { return nil }

type fakeNotifier struct{ notification.NotificationService }

func (fakeNotifier) Notify(_ context.Context, _ notification.Notification) error { return nil }

type fakeAudits struct{}

func (fakeAudits) Create(_ context.Context, _ audit.Entry) error { return nil }

func (fakeAudits) ListByReference(_ context.Context, _ audit.Reference) ([]audit.Entry, error) {
	return nil, nil
}

func testAttendanceConfig() config.AttendanceConfig {
	return config.AttendanceConfig{
		WorkStart:            "09:00",
		WorkEnd:              "17:00",
		LateToleranceMinutes: 15,
		EarlyLeaveMinutes:    15,
		OfficeLatitude:       -6.2,
		OfficeLongitude:      106.8,
		OfficeRadiusMeters:   100,
		StandardWorkHours:    8,
	}
}

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := tokenAuth.Encode(map[string]interface{}{"employee_id": employeeID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestAttendanceService(repo *fakeAttendanceRepo, now time.Time) *AttendanceServiceImpl {
	emp := employee.Employee{
		ID:             "emp-1",
		EmployeeCode:   "EMP001",
		FullName:       "Siti Rahayu",
		Department:     "production",
		FaceRegistered: true,
		Status:         employee.StatusActive,
	}
	svc := NewAttendanceService(
		repo, &fakeEmployeeRepo{emp: emp}, fakeWorkPeriods{}, fakeHolidays{},
		identity.NewGate(fakeRecognizer{userID: "emp-1"}), fakePhotoStore{},
		fakeNotifier{}, fakeAudits{}, testAttendanceConfig(), time.UTC,
	).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc
}

func clockRequest(eventType string) *attendance.ClockEventRequest {
	lat, lon := -6.2, 106.8
	return &attendance.ClockEventRequest{
		Type:      eventType,
		Photo:     "aGVsbG8=",
		Latitude:  &lat,
		Longitude: &lon,
	}
}

func TestClockEventSecondClockInDenied(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Date(2026, 3, 3, 8, 55, 0, 0, time.UTC))
	ctx := authedContext(t, "emp-1")

	first, err := svc.ClockEvent(ctx, clockRequest("clock_in"))
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), first.Status)

	_, err = svc.ClockEvent(ctx, clockRequest("clock_in"))
	require.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	// The stored record is untouched by the denied attempt.
	require.Len(t, repo.byDay, 1)
	stored := repo.byDay[dayKey("emp-1", time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))]
	require.NotNil(t, stored.ClockIn)
	assert.Equal(t, "08:55", stored.ClockIn.Format("15:04"))
	assert.Nil(t, stored.ClockOut)
}

func TestClockEventConcurrentClockInDenied(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Date(2026, 3, 3, 8, 55, 0, 0, time.UTC))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockEvent(ctx, clockRequest("clock_in"))
	require.NoError(t, err)

	// The duplicate check races past a concurrent insert; the unique
	// index still answers with the same denial.
	repo.missNextGet = true
	_, err = svc.ClockEvent(ctx, clockRequest("clock_in"))
	require.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	assert.Len(t, repo.byDay, 1)
}

func TestClockEventClockOutWithoutOpenSession(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Date(2026, 3, 3, 17, 5, 0, 0, time.UTC))

	_, err := svc.ClockEvent(authedContext(t, "emp-1"), clockRequest("clock_out"))
	require.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockEventSecondClockOutDenied(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Date(2026, 3, 3, 8, 55, 0, 0, time.UTC))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockEvent(ctx, clockRequest("clock_in"))
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 3, 17, 5, 0, 0, time.UTC) }
	out, err := svc.ClockEvent(ctx, clockRequest("clock_out"))
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), out.Status)
	assert.Equal(t, "8.17", out.WorkHours)

	_, err = svc.ClockEvent(ctx, clockRequest("clock_out"))
	require.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockEventRejectsUnknownType(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Date(2026, 3, 3, 8, 55, 0, 0, time.UTC))

	_, err := svc.ClockEvent(authedContext(t, "emp-1"), clockRequest("in"))
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "type", errs[0].Field)
	assert.Empty(t, repo.byDay)
}

func TestUpdateRejectsClockOutBeforeClockIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestAttendanceService(repo, time.Date(2026, 3, 3, 8, 55, 0, 0, time.UTC))
	ctx := authedContext(t, "emp-1")

	_, err := svc.ClockEvent(ctx, clockRequest("clock_in"))
	require.NoError(t, err)
	storedID := repo.byDay[dayKey("emp-1", time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))].ID

	earlier := "2026-03-03T07:00:00Z"
	_, err = svc.Update(ctx, &attendance.UpdateAttendanceRequest{
		ID:       storedID,
		ClockOut: &earlier,
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "clock_out", errs[0].Field)
	assert.Empty(t, repo.updated)
}
