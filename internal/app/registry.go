package app

import (
	"database/sql"

	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	"github.com/pandiaraajan-hub/workerprolite/internal/course"
	"github.com/pandiaraajan-hub/workerprolite/internal/export"
	"github.com/pandiaraajan-hub/workerprolite/internal/importer"
	"github.com/pandiaraajan-hub/workerprolite/internal/messaging/kafka"
	"github.com/pandiaraajan-hub/workerprolite/internal/stats"
	"github.com/pandiaraajan-hub/workerprolite/internal/worker"

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
	courseRepo course.Repository,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	workerRepo := worker.NewRepository(gormDB)
	certRepo := certification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	courseService := course.NewService(courseRepo, rdb, logger)
	certService := certification.NewService(certRepo, courseRepo, logger)
	workerService := worker.NewServiceWithOutbox(db, workerRepo, certService, outboxRepo, logger)
	importService := importer.NewService(workerRepo, certRepo, courseService, certService, outboxRepo, logger)
	statsService := stats.NewService(workerRepo, certRepo, courseRepo, logger)
	exportService := export.NewService(workerRepo, certRepo, logger)

	// --- Handlers ---
	courseHandler := course.NewHandler(courseService, logger)
	certHandler := certification.NewHandler(certService, logger)
	workerHandler := worker.NewHandler(workerService, logger)
	importHandler := importer.NewHandler(importService, logger)
	statsHandler := stats.NewHandler(statsService, logger)
	exportHandler := export.NewHandler(exportService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		worker.RegisterRoutes(api, workerHandler, logger)
		course.RegisterRoutes(api, courseHandler, logger)
		certification.RegisterRoutes(api, certHandler, logger)
		importer.RegisterRoutes(api, importHandler, logger)
		stats.RegisterRoutes(api, statsHandler, logger)
		export.RegisterRoutes(api, exportHandler, logger)
	}

	return nil
}
