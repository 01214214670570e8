package certification

import (
	"context"
	"errors"
	"time"

	certificationerrors "github.com/pandiaraajan-hub/workerprolite/internal/certification/errors"
	"github.com/pandiaraajan-hub/workerprolite/internal/course"
	"github.com/pandiaraajan-hub/workerprolite/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context) ([]CertificationResponse, error)
	GetByWorker(ctx context.Context, workerID string) ([]CertificationResponse, error)
	GetExpiring(ctx context.Context, days int) ([]CertificationResponse, error)
	Create(ctx context.Context, workerID string, req CreateCertificationRequest) (CertificationResponse, error)
	Update(ctx context.Context, id string, req UpdateCertificationRequest) (CertificationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	courses course.Repository
	logger  *zap.Logger
}

func NewService(repo Repository, courses course.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("certification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certification.service")
	}
	return &service{repo: repo, courses: courses, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]CertificationResponse, error) {
	certs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all certifications failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(certs, time.Now()), nil
}

func (s *service) GetByWorker(ctx context.Context, workerID string) ([]CertificationResponse, error) {
	certs, err := s.repo.FindByWorker(ctx, workerID)
	if err != nil {
		s.logger.Error("get certifications by worker failed",
			zap.String("worker_id", workerID),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(certs, time.Now()), nil
}

func (s *service) GetExpiring(ctx context.Context, days int) ([]CertificationResponse, error) {
	if days <= 0 {
		return nil, certificationerrors.ErrInvalidExpiryWindow
	}

	cutoff := time.Now().AddDate(0, 0, days)
	certs, err := s.repo.FindExpiringBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("get expiring certifications failed", zap.Int("days", days), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(certs, time.Now()), nil
}

func (s *service) Create(
	ctx context.Context,
	workerID string,
	req CreateCertificationRequest,
) (CertificationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	workerUUID, err := uuid.Parse(workerID)
	if err != nil {
		return CertificationResponse{}, certificationerrors.ErrInvalidWorkerID
	}

	crs, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CertificationResponse{}, certificationerrors.ErrCourseNotFound
		}
		log.Error("create certification course lookup failed", zap.Error(err))
		return CertificationResponse{}, err
	}

	issuedDate, err := parseDate(req.IssuedDate)
	if err != nil {
		return CertificationResponse{}, certificationerrors.ErrInvalidDate
	}
	if issuedDate == nil {
		now := time.Now()
		issuedDate = &now
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return CertificationResponse{}, certificationerrors.ErrInvalidDate
	}

	name := req.Name
	if name == "" {
		name = crs.Name
	}

	cert := &Certification{
		ID:                uuid.New(),
		WorkerID:          workerUUID,
		CourseID:          crs.ID,
		Name:              name,
		CertificateNumber: req.CertificateNumber,
		IssuedDate:        issuedDate,
		ExpiryDate:        expiryDate,
		Status:            string(DeriveStatus(expiryDate, time.Now())),
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		log.Error("create certification persist failed", zap.Error(err))
		return CertificationResponse{}, mapRepositoryError(err)
	}

	log.Info("certification created",
		zap.String("certification_id", cert.ID.String()),
		zap.String("worker_id", workerID),
		zap.String("course", crs.Name),
	)

	cert.Course = crs
	return mapToResponse(*cert, time.Now()), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateCertificationRequest,
) (CertificationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	cert, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CertificationResponse{}, mapRepositoryError(err)
	}

	if req.CertificateNumber != nil {
		cert.CertificateNumber = *req.CertificateNumber
	}
	if req.IssuedDate != nil {
		issued, err := parseDate(*req.IssuedDate)
		if err != nil {
			return CertificationResponse{}, certificationerrors.ErrInvalidDate
		}
		cert.IssuedDate = issued
	}
	if req.ExpiryDate != nil {
		expiry, err := parseDate(*req.ExpiryDate)
		if err != nil {
			return CertificationResponse{}, certificationerrors.ErrInvalidDate
		}
		cert.ExpiryDate = expiry
	}
	cert.Status = string(DeriveStatus(cert.ExpiryDate, time.Now()))

	if err := s.repo.Update(ctx, cert); err != nil {
		log.Error("update certification persist failed", zap.Error(err))
		return CertificationResponse{}, mapRepositoryError(err)
	}

	log.Info("certification updated", zap.String("certification_id", id))

	return mapToResponse(*cert, time.Now()), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("delete certification failed", zap.String("certification_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	log.Info("certification deleted", zap.String("certification_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return certificationerrors.ErrCertificationNotFound
	}
	return err
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// mapToResponse always rewrites the status from the expiry date; the
// persisted value is never trusted on the way out.
func mapToResponse(cert Certification, now time.Time) CertificationResponse {
	resp := CertificationResponse{
		ID:                cert.ID.String(),
		WorkerID:          cert.WorkerID.String(),
		CourseID:          cert.CourseID.String(),
		Name:              cert.Name,
		CertificateNumber: cert.CertificateNumber,
		Status:            string(DeriveStatus(cert.ExpiryDate, now)),
	}
	if cert.IssuedDate != nil {
		resp.IssuedDate = cert.IssuedDate.Format("2006-01-02")
	}
	if cert.ExpiryDate != nil {
		resp.ExpiryDate = cert.ExpiryDate.Format("2006-01-02")
	}
	if cert.Course != nil {
		resp.Course = &CourseSummary{
			ID:   cert.Course.ID.String(),
			Name: cert.Course.Name,
		}
	}
	return resp
}

func mapToListResponse(certs []Certification, now time.Time) []CertificationResponse {
	res := make([]CertificationResponse, len(certs))
	for i, c := range certs {
		res[i] = mapToResponse(c, now)
	}
	return res
}
