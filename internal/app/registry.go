package app

import (
	"database/sql"
	"path/filepath"

	"github.com/businessregulatoryreviewagency/brra/internal/calendar"
	"github.com/businessregulatoryreviewagency/brra/internal/leaverequest"
	"github.com/businessregulatoryreviewagency/brra/internal/messaging/kafka"
	"github.com/businessregulatoryreviewagency/brra/internal/rbac"
	"github.com/businessregulatoryreviewagency/brra/internal/rbac/infra"
	"github.com/businessregulatoryreviewagency/brra/internal/shared/counter"
	"github.com/businessregulatoryreviewagency/brra/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	staffRepo := staff.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("config", "rbac", "model.conf"),
		filepath.Join("config", "rbac", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	calendarEngine := calendar.NewEngine(calendar.Zambia())
	leaveRequestService := leaverequest.NewServiceWithOutbox(
		db, leaveRequestRepo, counterRepo, outboxRepo, calendarEngine, logger,
	)
	staffService := staff.NewService(db, staffRepo, counterRepo, rdb, logger)

	// --- Handlers ---
	calendarHandler := calendar.NewHandler(calendarEngine, logger)
	leaveRequestHandler := leaverequest.NewHandlerWithRedis(leaveRequestService, rdb, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	staffHandler := staff.NewHandler(staffService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		calendar.RegisterRoutes(api, calendarHandler)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, logger, rdb)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		staff.RegisterRoutes(api, staffHandler, rbacService)
	}

	return nil
}
