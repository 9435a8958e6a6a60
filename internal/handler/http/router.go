package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/facekeep/timekeep-backend-go/internal/handler/http/middleware"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	timekeepingHandler TimekeepingHandler,
	dashboardHandler DashboardHandler,
	employeeHandler EmployeeHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timekeep-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/auth/change-password", authHandler.ChangePassword)

			r.Get("/dashboard", dashboardHandler.GetSnapshot)

			r.Route("/timekeeping", func(r chi.Router) {
				r.Get("/", timekeepingHandler.ListDayRecords)
				r.Get("/{employee_id}/records", timekeepingHandler.GetDayRecords)

				r.Post("/checkin/{employee_id}", timekeepingHandler.CheckIn)
				r.Post("/checkout/{employee_id}", timekeepingHandler.CheckOut)

				r.Route("/logs", func(r chi.Router) {
					r.Get("/", timekeepingHandler.ListLogs)
					r.Get("/{id}", timekeepingHandler.GetLog)

					// Manager/HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Delete("/{id}", timekeepingHandler.DeleteLog)
					})
				})

				// Manager/HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/leave", timekeepingHandler.SetLeave)
					r.Delete("/leave", timekeepingHandler.ClearLeave)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)

				// Manager/HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			// Manager/HR only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/reports/attendance/export", reportHandler.ExportAttendance)
			})
		})
	})
	return r
}
