package app

import (
	"context"
	"os"

	"github.com/pandiaraajan-hub/workerprolite/internal/bootstrap"
	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	"github.com/pandiaraajan-hub/workerprolite/internal/course"
	"github.com/pandiaraajan-hub/workerprolite/internal/middleware"
	"github.com/pandiaraajan-hub/workerprolite/internal/shared/connection"
	"github.com/pandiaraajan-hub/workerprolite/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure, migrates the schema, seeds the
// course catalog, and registers every module's routes on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	courseRepo := course.NewRepository(gormDB)
	if err := bootstrap.SeedCourses(context.Background(), courseRepo, logger); err != nil {
		return err
	}

	router.Use(middleware.RequestID())

	return registerModules(router, db, gormDB, rdb, courseRepo, logger)
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&course.Course{},
		&worker.Worker{},
		&certification.Certification{},
	); err != nil {
		return err
	}
	return ensureOutboxTable(gormDB)
}

// ensureOutboxTable creates the outbox by hand: the outbox repository
// works on raw SQL and has no gorm entity to auto-migrate from.
func ensureOutboxTable(gormDB *gorm.DB) error {
	return gormDB.Exec(`
CREATE TABLE IF NOT EXISTS outbox_events (
    id UUID PRIMARY KEY,
    request_id TEXT,
    aggregate_type TEXT NOT NULL,
    aggregate_id UUID NOT NULL,
    event_type TEXT NOT NULL,
    topic TEXT NOT NULL,
    payload JSONB NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    retry_count INT NOT NULL DEFAULT 0,
    error_message TEXT,
    next_retry_at TIMESTAMPTZ,
    processed_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
    ON outbox_events (status, created_at);
`).Error
}
