package app

import (
	"database/sql"

	"go-hrops/internal/attendance"
	"go-hrops/internal/auth"
	"go-hrops/internal/leave"
	"go-hrops/internal/messaging/kafka"
	"go-hrops/internal/notification"
	"go-hrops/internal/payroll"
	"go-hrops/internal/rbac"
	"go-hrops/internal/settings"
	"go-hrops/internal/shared/config"
	"go-hrops/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewDefaultService()
	if err != nil {
		return err
	}

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.JWTTTL)
	authService := auth.NewService(db, userRepo, tokens, cfg.Security.BCryptCost)
	userService := user.NewService(db, userRepo, rbacService, cfg.Security.BCryptCost)
	settingsService := settings.NewService(settingsRepo, rbacService, settings.Defaults{
		FullDayHours:    cfg.Attendance.FullDayHours,
		HalfDayMinHours: cfg.Attendance.HalfDayMinHours,
		WorkdayStart:    cfg.Attendance.WorkdayStart,
		WorkdayEnd:      cfg.Attendance.WorkdayEnd,
	})
	attendanceService := attendance.NewService(db, attendanceRepo, rbacService, settingsService, cfg.Location())
	leaveService := leave.NewService(db, leaveRepo, rbacService, outboxRepo)
	payrollService := payroll.NewService(db, payrollRepo, rbacService, outboxRepo)
	notificationService := notification.NewService(notificationRepo, rbacService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	userHandler := user.NewHandler(userService)
	settingsHandler := settings.NewHandler(settingsService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandler(payrollService)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authService)
		user.RegisterRoutes(api, userHandler, authService, rbacService)
		settings.RegisterRoutes(api, settingsHandler, authService, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, authService, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, authService, rbacService, rdb)
		payroll.RegisterRoutes(api, payrollHandler, authService, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, authService, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, authService)
	}

	return nil
}
