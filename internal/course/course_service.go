package course

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	courseerrors "github.com/pandiaraajan-hub/workerprolite/internal/course/errors"
	"github.com/pandiaraajan-hub/workerprolite/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const OptionsCacheKey = "courses:options"

type Service interface {
	GetAll(ctx context.Context) ([]CourseResponse, error)
	GetOptions(ctx context.Context) ([]CourseResponse, error)
	Catalog(ctx context.Context) (map[string]Course, error)
	Create(ctx context.Context, req CreateCourseRequest) (CourseResponse, error)
	Update(ctx context.Context, id string, req UpdateCourseRequest) (CourseResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("course.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("course.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]CourseResponse, error) {
	courses, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("get all courses failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(courses), nil
}

// GetOptions serves the course picker. The catalog is master data that
// changes rarely, so it is cached in Redis and guarded by singleflight
// against stampedes when the cache is cold.
func (s *service) GetOptions(ctx context.Context) ([]CourseResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []CourseResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		courses, err := s.repo.FindAllActive(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(courses)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]CourseResponse), nil
}

// Catalog returns active courses keyed by lowercased name, the lookup
// shape the spreadsheet importer matches column headers against.
func (s *service) Catalog(ctx context.Context) (map[string]Course, error) {
	courses, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]Course, len(courses))
	for _, c := range courses {
		catalog[strings.ToLower(c.Name)] = c
	}
	return catalog, nil
}

func (s *service) Create(ctx context.Context, req CreateCourseRequest) (CourseResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if existing, err := s.repo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return CourseResponse{}, courseerrors.ErrCourseNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("create course name lookup failed", zap.Error(err))
		return CourseResponse{}, err
	}

	crs := &Course{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, crs); err != nil {
		log.Error("create course persist failed", zap.Error(err))
		return CourseResponse{}, err
	}

	s.invalidateOptions(ctx)

	log.Info("course created",
		zap.String("course_id", crs.ID.String()),
		zap.String("name", crs.Name),
	)

	return mapToResponse(*crs), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCourseRequest) (CourseResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	crs, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CourseResponse{}, courseerrors.ErrCourseNotFound
		}
		return CourseResponse{}, err
	}

	if req.Name != nil {
		crs.Name = *req.Name
	}
	if req.Description != nil {
		crs.Description = *req.Description
	}
	if req.Duration != nil {
		crs.Duration = req.Duration
	}

	if err := s.repo.Update(ctx, crs); err != nil {
		log.Error("update course persist failed", zap.Error(err))
		return CourseResponse{}, err
	}

	s.invalidateOptions(ctx)

	log.Info("course updated", zap.String("course_id", id))

	return mapToResponse(*crs), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return courseerrors.ErrCourseNotFound
		}
		return err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		log.Error("deactivate course failed", zap.String("course_id", id), zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)

	log.Info("course deactivated", zap.String("course_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate course options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func mapToResponse(crs Course) CourseResponse {
	return CourseResponse{
		ID:          crs.ID.String(),
		Name:        crs.Name,
		Description: crs.Description,
		Duration:    crs.Duration,
		IsActive:    crs.IsActive,
	}
}

func mapToListResponse(courses []Course) []CourseResponse {
	res := make([]CourseResponse, len(courses))
	for i, c := range courses {
		res[i] = mapToResponse(c)
	}
	return res
}
