package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/workpulse/attendance-system/internal/api/handler"
	"github.com/workpulse/attendance-system/internal/api/middleware"
	"github.com/workpulse/attendance-system/internal/core/domain"
	"github.com/workpulse/attendance-system/internal/core/service"
	redisstore "github.com/workpulse/attendance-system/internal/infrastructure/db/redis"
	"github.com/workpulse/attendance-system/internal/infrastructure/db/sqlstore"
	"github.com/workpulse/attendance-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sqlx.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("attendance"))

	// --- Dependencies ---
	userRepo := sqlstore.NewUserRepository(db)
	attendanceRepo := sqlstore.NewAttendanceRepository(db)
	tokenStore := redisstore.NewTokenStore(rdb)

	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.JWTTTL, log)
	attendanceService := service.NewAttendanceService(userRepo, attendanceRepo, log)
	reportService := service.NewReportService(userRepo, attendanceRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService, reportService)
	dashboardHandler := handler.NewDashboardHandler(reportService)
	managerHandler := handler.NewManagerHandler(reportService)

	authMiddleware := middleware.Auth(cfg.JWTSecret, tokenStore)
	managerOnly := middleware.RBAC(domain.RoleManager)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMiddleware)
	auth.POST("/logout", authHandler.Logout, authMiddleware)

	// --- Attendance routes ---
	attendance := e.Group("/api/attendance", authMiddleware)
	attendance.POST("/checkin", attendanceHandler.CheckIn)
	attendance.POST("/checkout", attendanceHandler.CheckOut)
	attendance.GET("/today", attendanceHandler.Today)
	attendance.GET("/my-history", attendanceHandler.MyHistory)
	attendance.GET("/my-summary", attendanceHandler.MySummary)

	// --- Dashboard routes ---
	dashboard := e.Group("/api/dashboard", authMiddleware)
	dashboard.GET("/employee", dashboardHandler.Employee)
	dashboard.GET("/manager", dashboardHandler.Manager, managerOnly)

	// --- Manager routes ---
	manager := e.Group("/api/manager/attendance", authMiddleware, managerOnly)
	manager.GET("/all", managerHandler.All)
	manager.GET("/employee/:id", managerHandler.Employee)
	manager.GET("/summary", managerHandler.Summary)
	manager.GET("/today-status", managerHandler.TodayStatus)
	manager.GET("/export", managerHandler.Export)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
