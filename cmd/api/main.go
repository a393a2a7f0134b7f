package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/omanjaya/sistem-absensi-manufac/internal/config"
	appHTTP "github.com/omanjaya/sistem-absensi-manufac/internal/handler/http"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/cron"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/database"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/face"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/jwt"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/sse"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/storage"
	"github.com/omanjaya/sistem-absensi-manufac/internal/repository/postgresql"
	attendanceService "github.com/omanjaya/sistem-absensi-manufac/internal/service/attendance"
	authService "github.com/omanjaya/sistem-absensi-manufac/internal/service/auth"
	employeeService "github.com/omanjaya/sistem-absensi-manufac/internal/service/employee"
	"github.com/omanjaya/sistem-absensi-manufac/internal/service/enrollment"
	holidayService "github.com/omanjaya/sistem-absensi-manufac/internal/service/holiday"
	"github.com/omanjaya/sistem-absensi-manufac/internal/service/identity"
	leaveService "github.com/omanjaya/sistem-absensi-manufac/internal/service/leave"
	notificationService "github.com/omanjaya/sistem-absensi-manufac/internal/service/notification"
	payrollService "github.com/omanjaya/sistem-absensi-manufac/internal/service/payroll"
	scheduleService "github.com/omanjaya/sistem-absensi-manufac/internal/service/schedule"
	"github.com/omanjaya/sistem-absensi-manufac/internal/service/workflow"
	workPeriodService "github.com/omanjaya/sistem-absensi-manufac/internal/service/workperiod"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Error loading timezone: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	photoStore, err := storage.NewLocalPhotoStore(cfg.Attendance.PhotoDir)
	if err != nil {
		log.Fatal("Error initializing photo store: ", err)
	}

	faceClient := face.NewClient(cfg.Face.BaseURL, cfg.Face.Timeout)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	workPeriodRepo := postgresql.NewWorkPeriodRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	notifications := notificationService.NewNotificationService(notificationRepo, hub)
	holidays := holidayService.NewHolidayService(holidayRepo, loc)
	workPeriods := workPeriodService.NewWorkPeriodService(workPeriodRepo, loc)
	gate := identity.NewGate(faceClient)
	enrollments := enrollment.NewService(faceClient, employeeRepo)

	attendances := attendanceService.NewAttendanceService(
		attendanceRepo, employeeRepo, workPeriods, holidays,
		gate, photoStore, notifications, auditRepo, cfg.Attendance, loc,
	)
	leaves := leaveService.NewLeaveService(leaveRepo, employeeRepo, notifications, auditRepo, loc)
	schedules := scheduleService.NewScheduleService(scheduleRepo, employeeRepo)
	employees := employeeService.NewEmployeeService(employeeRepo, loc)
	auths := authService.NewAuthService(employeeRepo, jwtService)

	calendar := payrollService.NewWorkdayCalendar(workPeriods, holidayRepo)
	payrolls, err := payrollService.NewPayrollService(
		db, payrollRepo, employeeRepo, attendanceRepo, leaveRepo,
		calendar, notifications, auditRepo, cfg.Salary, loc,
	)
	if err != nil {
		log.Fatal("Error initializing payroll service: ", err)
	}

	workflows := workflow.NewWorkflowService(leaveRepo, leaves, payrollRepo, payrolls, employeeRepo)

	router := appHTTP.NewRouter(jwtService, cfg.App.Env, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(auths),
		Attendance:   appHTTP.NewAttendanceHandler(attendances),
		Face:         appHTTP.NewFaceHandler(enrollments),
		Employee:     appHTTP.NewEmployeeHandler(employees),
		Leave:        appHTTP.NewLeaveHandler(leaves),
		Holiday:      appHTTP.NewHolidayHandler(holidays),
		WorkPeriod:   appHTTP.NewWorkPeriodHandler(workPeriods),
		Schedule:     appHTTP.NewScheduleHandler(schedules),
		Payroll:      appHTTP.NewPayrollHandler(payrolls),
		Workflow:     appHTTP.NewWorkflowHandler(workflows),
		Notification: appHTTP.NewNotificationHandler(notifications, jwtService, hub),
	})

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(
		attendanceRepo, employeeRepo, leaveRepo,
		workPeriods, holidays, notifications, loc,
	)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Printf("Server listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
