package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/omanjaya/sistem-absensi-manufac/internal/domain/auth"
	"github.com/omanjaya/sistem-absensi-manufac/internal/handler/http/middleware"
	"github.com/omanjaya/sistem-absensi-manufac/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Face         FaceHandler
	Employee     EmployeeHandler
	Leave        LeaveHandler
	Holiday      HolidayHandler
	WorkPeriod   WorkPeriodHandler
	Schedule     ScheduleHandler
	Payroll      PayrollHandler
	Workflow     WorkflowHandler
	Notification NotificationHandler
}

func NewRouter(jwtService jwt.Service, env string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sistem-absensi"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService))
				r.Get("/me", h.Auth.Me)
				r.Post("/sse-token", h.Auth.SSEToken)
			})
		})

		// The stream authenticates with its own short-lived token
		// because EventSource cannot send headers.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/", h.Attendance.ClockEvent)
				r.Get("/", h.Attendance.List)
				r.Get("/today", h.Attendance.TodayStatus)
				r.Get("/{id}", h.Attendance.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(auth.CapCorrectAttendance))
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/face", func(r chi.Router) {
				r.Post("/register", h.Face.Register)
				r.Get("/status", h.Face.Status)
				r.Delete("/", h.Face.Delete)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Create)
				r.Get("/{id}", h.Leave.GetByID)
				r.Put("/{id}", h.Leave.Update)
				r.Delete("/{id}", h.Leave.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(auth.CapReviewLeaves))
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Get("/{id}", h.Holiday.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(auth.CapManageHolidays))
					r.Post("/", h.Holiday.Create)
					r.Put("/{id}", h.Holiday.Update)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/work-periods", func(r chi.Router) {
				r.Get("/", h.WorkPeriod.List)
				r.Get("/{id}", h.WorkPeriod.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(auth.CapManageWorkPeriods))
					r.Post("/", h.WorkPeriod.Create)
					r.Put("/{id}", h.WorkPeriod.Update)
					r.Delete("/{id}", h.WorkPeriod.Delete)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.Schedule.List)
				r.Get("/{id}", h.Schedule.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(auth.CapManageSchedules))
					r.Post("/", h.Schedule.Create)
					r.Put("/{id}", h.Schedule.Update)
					r.Delete("/{id}", h.Schedule.Delete)
					r.Get("/conflicts", h.Schedule.ConflictReport)
				})
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/", h.Payroll.List)
				r.Get("/{id}", h.Payroll.GetByID)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireCapability(auth.CapManagePayroll))
					r.Post("/generate", h.Payroll.Generate)
					r.Post("/{id}/finalize", h.Payroll.Finalize)
					r.Post("/{id}/pay", h.Payroll.MarkPaid)
				})
			})

			r.Route("/workflows", func(r chi.Router) {
				r.With(middleware.RequireCapability(auth.CapReviewLeaves)).
					Post("/leaves/bulk-approve", h.Workflow.BulkApproveLeaves)
				r.With(middleware.RequireCapability(auth.CapManagePayroll)).
					Post("/payrolls/bulk-generate", h.Workflow.BulkGeneratePayroll)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Put("/{id}/read", h.Notification.MarkRead)
				r.Put("/read-all", h.Notification.MarkAllRead)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireCapability(auth.CapManageEmployees))
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
				r.Get("/{id}", h.Employee.GetByID)
				r.Put("/{id}", h.Employee.Update)
				r.Delete("/{id}", h.Employee.Delete)
			})
		})
	})

	return r
}
