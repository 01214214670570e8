package stats

import (
	"context"

	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	"github.com/pandiaraajan-hub/workerprolite/internal/course"
	"github.com/pandiaraajan-hub/workerprolite/internal/shared/contextutil"
	"github.com/pandiaraajan-hub/workerprolite/internal/worker"

	"go.uber.org/zap"
)

type Service interface {
	GetStats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	workers worker.Repository
	certs   certification.Repository
	courses course.Repository
	logger  *zap.Logger
}

func NewService(
	workers worker.Repository,
	certs certification.Repository,
	courses course.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	return &service{
		workers: workers,
		certs:   certs,
		courses: courses,
		logger:  l,
	}
}

func (s *service) GetStats(ctx context.Context) (StatsResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	workers, err := s.workers.FindAllActive(ctx)
	if err != nil {
		log.Error("stats load workers failed", zap.Error(err))
		return StatsResponse{}, err
	}

	courseCount, err := s.courses.Count(ctx)
	if err != nil {
		log.Error("stats count courses failed", zap.Error(err))
		return StatsResponse{}, err
	}

	certs, err := s.certs.FindAll(ctx)
	if err != nil {
		log.Error("stats load certifications failed", zap.Error(err))
		return StatsResponse{}, err
	}

	return Compute(workers, certs, int(courseCount)), nil
}
