package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	"github.com/pandiaraajan-hub/workerprolite/internal/events"
	"github.com/pandiaraajan-hub/workerprolite/internal/messaging/kafka"
	"github.com/pandiaraajan-hub/workerprolite/internal/shared/contextutil"
	workererrors "github.com/pandiaraajan-hub/workerprolite/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	GetAll(ctx context.Context) ([]WorkerResponse, error)
	Search(ctx context.Context, query string) ([]WorkerResponse, error)
	GetByID(ctx context.Context, id string) (WorkerResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	certs  certification.Service
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, certs certification.Service, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, certs, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	certs certification.Service,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("worker.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worker.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		certs:  certs,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create worker requested",
		zap.String("workers_id", req.WorkersID),
	)

	dateOfExpiry, err := parseOptionalDate(req.DateOfExpiry)
	if err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidDate
	}
	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidDate
	}

	w := &Worker{
		ID:            uuid.New(),
		WorkersID:     req.WorkersID,
		NameOfWorkers: req.NameOfWorkers,
		Entity:        req.Entity,
		SerialNumber:  req.SerialNumber,
		Designation:   req.Designation,
		ContactNo:     req.ContactNo,
		Nationality:   req.Nationality,
		WPNo:          req.WPNo,
		NRICFinNo:     req.NRICFinNo,
		DateOfExpiry:  dateOfExpiry,
		DateOfBirth:   dateOfBirth,
		IsActive:      true,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create worker begin tx failed", zap.Error(err))
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, w); err != nil {
		log.Error("create worker persist failed", zap.Error(err))
		return WorkerResponse{}, MapRepositoryError(err)
	}

	if err := s.stageEvent(ctx, tx, rid, events.WorkerCreated, "manual", w); err != nil {
		log.Error("create worker outbox persist failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create worker commit failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	var created []certification.CertificationResponse
	for _, certReq := range req.Certifications {
		resp, err := s.certs.Create(ctx, w.ID.String(), certReq)
		if err != nil {
			log.Error("create inline certification failed",
				zap.String("worker_id", w.ID.String()),
				zap.String("course_id", certReq.CourseID),
				zap.Error(err),
			)
			return WorkerResponse{}, err
		}
		created = append(created, resp)
	}

	log.Info("create worker success",
		zap.String("worker_id", w.ID.String()),
		zap.String("workers_id", w.WorkersID),
		zap.Int("certifications", len(created)),
	)

	return ToResponse(*w, created), nil
}

func (s *service) GetAll(ctx context.Context) ([]WorkerResponse, error) {
	workers, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.logger.Error("get all workers failed", zap.Error(err))
		return nil, MapRepositoryError(err)
	}

	res := make([]WorkerResponse, 0, len(workers))
	for _, w := range workers {
		certs, err := s.certs.GetByWorker(ctx, w.ID.String())
		if err != nil {
			s.logger.Error("get worker certifications failed",
				zap.String("worker_id", w.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		res = append(res, ToResponse(w, certs))
	}

	return res, nil
}

func (s *service) Search(ctx context.Context, query string) ([]WorkerResponse, error) {
	if query == "" {
		return nil, workererrors.ErrSearchQueryRequired
	}

	workers, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Error("search workers failed", zap.String("query", query), zap.Error(err))
		return nil, MapRepositoryError(err)
	}

	res := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		res[i] = ToResponse(w, nil)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkerResponse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkerResponse{}, MapRepositoryError(err)
	}

	certs, err := s.certs.GetByWorker(ctx, id)
	if err != nil {
		return WorkerResponse{}, err
	}

	return ToResponse(*w, certs), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkerRequest) (WorkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update worker requested", zap.String("worker_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update worker begin tx failed", zap.Error(err))
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	w, err := qtx.FindByID(ctx, id)
	if err != nil {
		return WorkerResponse{}, MapRepositoryError(err)
	}

	if err := applyUpdate(w, req); err != nil {
		return WorkerResponse{}, err
	}

	if err := qtx.Update(ctx, w); err != nil {
		log.Error("update worker persist failed", zap.Error(err))
		return WorkerResponse{}, MapRepositoryError(err)
	}

	if err := s.stageEvent(ctx, tx, rid, events.WorkerUpdated, "manual", w); err != nil {
		log.Error("update worker outbox persist failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update worker commit failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	certs, err := s.certs.GetByWorker(ctx, id)
	if err != nil {
		return WorkerResponse{}, err
	}

	log.Info("update worker success", zap.String("worker_id", id))

	return ToResponse(*w, certs), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("deactivate worker requested", zap.String("worker_id", id))

	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return MapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("deactivate worker begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Deactivate(ctx, id); err != nil {
		log.Error("deactivate worker failed", zap.Error(err))
		return MapRepositoryError(err)
	}

	if err := s.stageEvent(ctx, tx, rid, events.WorkerDeactivated, "manual", w); err != nil {
		log.Error("deactivate worker outbox persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("deactivate worker commit failed", zap.Error(err))
		return err
	}

	log.Info("deactivate worker success", zap.String("worker_id", id))
	return nil
}

// stageEvent writes a lifecycle event into the outbox within the caller's
// transaction. A nil outbox (tests, minimal deployments) is a no-op.
func (s *service) stageEvent(
	ctx context.Context,
	tx *sql.Tx,
	requestID, eventType, source string,
	w *Worker,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.WorkerEvent{
		EventType:  eventType,
		RequestID:  requestID,
		WorkerID:   w.ID.String(),
		WorkersID:  w.WorkersID,
		Source:     source,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "worker",
		AggregateID:   w.ID.String(),
		EventType:     eventType,
		Topic:         events.WorkerLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func applyUpdate(w *Worker, req UpdateWorkerRequest) error {
	if req.WorkersID != nil {
		w.WorkersID = *req.WorkersID
	}
	if req.NameOfWorkers != nil {
		w.NameOfWorkers = *req.NameOfWorkers
	}
	if req.Entity != nil {
		w.Entity = *req.Entity
	}
	if req.SerialNumber != nil {
		w.SerialNumber = *req.SerialNumber
	}
	if req.Designation != nil {
		w.Designation = *req.Designation
	}
	if req.ContactNo != nil {
		w.ContactNo = *req.ContactNo
	}
	if req.Nationality != nil {
		w.Nationality = *req.Nationality
	}
	if req.WPNo != nil {
		w.WPNo = *req.WPNo
	}
	if req.NRICFinNo != nil {
		w.NRICFinNo = *req.NRICFinNo
	}
	if req.DateOfExpiry != nil {
		d, err := parseOptionalDate(*req.DateOfExpiry)
		if err != nil {
			return workererrors.ErrInvalidDate
		}
		w.DateOfExpiry = d
	}
	if req.DateOfBirth != nil {
		d, err := parseOptionalDate(*req.DateOfBirth)
		if err != nil {
			return workererrors.ErrInvalidDate
		}
		w.DateOfBirth = d
	}
	return nil
}

// parseOptionalDate treats an empty string as "no date"; an empty value in
// a PATCH clears the field.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ToResponse shapes a stored worker plus its certifications into the API
// representation.
func ToResponse(w Worker, certs []certification.CertificationResponse) WorkerResponse {
	resp := WorkerResponse{
		ID:             w.ID.String(),
		WorkersID:      w.WorkersID,
		NameOfWorkers:  w.NameOfWorkers,
		Entity:         w.Entity,
		SerialNumber:   w.SerialNumber,
		Designation:    w.Designation,
		ContactNo:      w.ContactNo,
		Nationality:    w.Nationality,
		WPNo:           w.WPNo,
		NRICFinNo:      w.NRICFinNo,
		IsActive:       w.IsActive,
		Certifications: certs,
	}
	if w.DateOfExpiry != nil {
		resp.DateOfExpiry = w.DateOfExpiry.Format("2006-01-02")
	}
	if w.DateOfBirth != nil {
		resp.DateOfBirth = w.DateOfBirth.Format("2006-01-02")
	}
	return resp
}
