package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/facekeep/timekeep-backend-go/internal/config"
	"github.com/facekeep/timekeep-backend-go/internal/domain/timekeeping"
	appHTTP "github.com/facekeep/timekeep-backend-go/internal/handler/http"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/database"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/jwt"
	"github.com/facekeep/timekeep-backend-go/internal/pkg/validator"
	"github.com/facekeep/timekeep-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/facekeep/timekeep-backend-go/internal/service/auth"
	dashboardService "github.com/facekeep/timekeep-backend-go/internal/service/dashboard"
	employeeService "github.com/facekeep/timekeep-backend-go/internal/service/employee"
	reportService "github.com/facekeep/timekeep-backend-go/internal/service/report"
	timekeepingService "github.com/facekeep/timekeep-backend-go/internal/service/timekeeping"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	location, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Invalid TIMEZONE: ", cfg.Attendance.Timezone)
	}

	lateMinutes, ok := validator.IsValidClockTime(cfg.Attendance.LateThreshold)
	if !ok {
		log.Fatal("Invalid LATE_THRESHOLD: ", cfg.Attendance.LateThreshold)
	}

	policy := timekeeping.DerivePolicy{
		LateThresholdMinutes: lateMinutes,
		Location:             location,
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timekeepingRepo := postgresql.NewTimekeepingRepository(db, location)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	timekeepingSvc := timekeepingService.NewTimekeepingService(db, timekeepingRepo, employeeRepo, policy)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, employeeRepo, location)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	reportSvc := reportService.NewReportService(timekeepingSvc)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	timekeepingHandler := appHTTP.NewTimekeepingHandler(timekeepingSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
		},
		JWTService,
		authHandler,
		timekeepingHandler,
		dashboardHandler,
		employeeHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
