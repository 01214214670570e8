package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	"github.com/pandiaraajan-hub/workerprolite/internal/course"
	"github.com/pandiaraajan-hub/workerprolite/internal/events"
	"github.com/pandiaraajan-hub/workerprolite/internal/messaging/kafka"
	"github.com/pandiaraajan-hub/workerprolite/internal/shared/contextutil"
	"github.com/pandiaraajan-hub/workerprolite/internal/worker"
	workererrors "github.com/pandiaraajan-hub/workerprolite/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxReportedIssues caps the row issues echoed back in diagnostics; the
// full list still goes to the log.
const maxReportedIssues = 5

type Service interface {
	ImportRows(ctx context.Context, headers []string, rows [][]string) (*ImportSummary, *ImportDiagnostics, error)
}

type service struct {
	workers worker.Repository
	certs   certification.Repository
	courses course.Service
	certSvc certification.Service
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(
	workers worker.Repository,
	certs certification.Repository,
	courses course.Service,
	certSvc certification.Service,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("importer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("importer.service")
	}
	return &service{
		workers: workers,
		certs:   certs,
		courses: courses,
		certSvc: certSvc,
		outbox:  outboxRepo,
		logger:  l,
	}
}

// ImportRows reconciles a parsed sheet against the database: unseen
// workers are created, known ones are merged in place, and every course
// signal on a row becomes a certification upsert keyed by (worker,
// course). Rows are processed independently; one bad row never aborts
// the batch.
func (s *service) ImportRows(
	ctx context.Context,
	headers []string,
	rows [][]string,
) (*ImportSummary, *ImportDiagnostics, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	catalog, err := s.courses.Catalog(ctx)
	if err != nil {
		log.Error("import load course catalog failed", zap.Error(err))
		return nil, nil, err
	}

	mapped := MapRows(toRowMaps(headers, rows), catalog)
	for _, issue := range mapped.Issues {
		log.Warn("import row skipped", zap.String("issue", issue))
	}

	if len(mapped.Rows) == 0 {
		return nil, &ImportDiagnostics{
			TotalRows:          mapped.TotalRows,
			AvailableColumns:   headers,
			Issues:             capIssues(mapped.Issues),
			RequiredColumns:    RequiredColumns,
			AcceptedVariations: AcceptedVariations(),
		}, nil
	}

	stats := ImportStats{
		TotalRows: mapped.TotalRows,
		Skipped:   len(mapped.Issues),
	}
	var results []worker.WorkerResponse

	for _, row := range mapped.Rows {
		w, err := s.reconcileWorker(ctx, row.Draft)
		if err != nil {
			log.Error("import worker reconcile failed",
				zap.String("workers_id", row.Draft.WorkersID),
				zap.Error(err),
			)
			stats.Skipped++
			continue
		}
		stats.WorkersProcessed++

		upserted, err := s.upsertCertifications(ctx, w, row.Extractions)
		if err != nil {
			log.Error("import certification upsert failed",
				zap.String("worker_id", w.ID.String()),
				zap.Error(err),
			)
		}
		stats.CertificationsCreated += upserted

		certs, err := s.certSvc.GetByWorker(ctx, w.ID.String())
		if err != nil {
			log.Error("import load certifications failed",
				zap.String("worker_id", w.ID.String()),
				zap.Error(err),
			)
			certs = nil
		}
		results = append(results, worker.ToResponse(*w, certs))
	}

	summary := &ImportSummary{
		Message: fmt.Sprintf(
			"Successfully processed %d workers and %d certifications (%d invalid rows skipped)",
			stats.WorkersProcessed, stats.CertificationsCreated, stats.Skipped,
		),
		Workers: results,
		Stats:   stats,
	}

	log.Info("import completed",
		zap.Int("total_rows", stats.TotalRows),
		zap.Int("workers_processed", stats.WorkersProcessed),
		zap.Int("certifications", stats.CertificationsCreated),
		zap.Int("skipped", stats.Skipped),
	)

	return summary, nil, nil
}

// reconcileWorker tries an insert first and falls back to merge-update
// when the workers id already exists. Racing imports of the same sheet
// both land on the update path, so replays are safe.
func (s *service) reconcileWorker(ctx context.Context, draft WorkerDraft) (*worker.Worker, error) {
	w := &worker.Worker{
		ID:            uuid.New(),
		WorkersID:     draft.WorkersID,
		NameOfWorkers: draft.NameOfWorkers,
		Entity:        draft.Entity,
		SerialNumber:  draft.SerialNumber,
		Designation:   draft.Designation,
		ContactNo:     draft.ContactNo,
		Nationality:   draft.Nationality,
		WPNo:          draft.WPNo,
		NRICFinNo:     draft.NRICFinNo,
		DateOfExpiry:  draft.DateOfExpiry,
		DateOfBirth:   draft.DateOfBirth,
		IsActive:      true,
	}

	err := s.workers.Create(ctx, w)
	if err == nil {
		s.stageEvent(ctx, events.WorkerCreated, w)
		return w, nil
	}
	if !errors.Is(worker.MapRepositoryError(err), workererrors.ErrWorkersIDExists) {
		return nil, worker.MapRepositoryError(err)
	}

	existing, err := s.workers.FindByWorkersID(ctx, draft.WorkersID)
	if err != nil {
		return nil, worker.MapRepositoryError(err)
	}

	mergeDraft(existing, draft)
	if err := s.workers.Update(ctx, existing); err != nil {
		return nil, worker.MapRepositoryError(err)
	}
	s.stageEvent(ctx, events.WorkerUpdated, existing)
	return existing, nil
}

// mergeDraft overlays the incoming row onto the stored record. Text
// fields overwrite when the sheet has a value; absent dates leave the
// stored dates untouched rather than clearing them.
func mergeDraft(w *worker.Worker, draft WorkerDraft) {
	w.NameOfWorkers = draft.NameOfWorkers
	if draft.Entity != "" {
		w.Entity = draft.Entity
	}
	if draft.SerialNumber != "" {
		w.SerialNumber = draft.SerialNumber
	}
	if draft.Designation != "" {
		w.Designation = draft.Designation
	}
	if draft.ContactNo != "" {
		w.ContactNo = draft.ContactNo
	}
	if draft.Nationality != "" {
		w.Nationality = draft.Nationality
	}
	if draft.WPNo != "" {
		w.WPNo = draft.WPNo
	}
	if draft.NRICFinNo != "" {
		w.NRICFinNo = draft.NRICFinNo
	}
	if draft.DateOfExpiry != nil {
		w.DateOfExpiry = draft.DateOfExpiry
	}
	if draft.DateOfBirth != nil {
		w.DateOfBirth = draft.DateOfBirth
	}
	w.IsActive = true
}

// upsertCertifications applies the row's course signals. An existing
// (worker, course) certification gets its expiry refreshed; anything
// else is created. A failure on one certification is logged and the
// rest of the row's certifications still go through. Returns the
// number of certifications touched.
func (s *service) upsertCertifications(
	ctx context.Context,
	w *worker.Worker,
	extractions []Extraction,
) (int, error) {
	if len(extractions) == 0 {
		return 0, nil
	}

	existing, err := s.certs.FindByWorker(ctx, w.ID.String())
	if err != nil {
		return 0, err
	}
	byCourse := make(map[uuid.UUID]*certification.Certification, len(existing))
	for i := range existing {
		byCourse[existing[i].CourseID] = &existing[i]
	}

	log := contextutil.GetLogger(ctx, s.logger)
	now := time.Now()
	touched := 0
	for _, ext := range extractions {
		if cert, ok := byCourse[ext.CourseID]; ok {
			cert.ExpiryDate = ext.ExpiryDate
			cert.Status = string(certification.DeriveStatus(ext.ExpiryDate, now))
			if err := s.certs.Update(ctx, cert); err != nil {
				log.Error("import certification update failed",
					zap.String("worker_id", w.ID.String()),
					zap.String("course", ext.CourseName),
					zap.Error(err),
				)
				continue
			}
			touched++
			continue
		}

		issued := now
		cert := &certification.Certification{
			ID:         uuid.New(),
			WorkerID:   w.ID,
			CourseID:   ext.CourseID,
			Name:       ext.CourseName,
			IssuedDate: &issued,
			ExpiryDate: ext.ExpiryDate,
			Status:     string(certification.DeriveStatus(ext.ExpiryDate, now)),
		}
		if err := s.certs.Create(ctx, cert); err != nil {
			log.Error("import certification create failed",
				zap.String("worker_id", w.ID.String()),
				zap.String("course", ext.CourseName),
				zap.Error(err),
			)
			continue
		}
		byCourse[ext.CourseID] = cert
		touched++
	}

	return touched, nil
}

// stageEvent writes an import-sourced lifecycle event straight to the
// outbox. Import rows commit row by row, so there is no surrounding
// transaction to join; a staging failure is logged and the import goes
// on.
func (s *service) stageEvent(ctx context.Context, eventType string, w *worker.Worker) {
	if s.outbox == nil {
		return
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.WorkerEvent{
		EventType:  eventType,
		RequestID:  rid,
		WorkerID:   w.ID.String(),
		WorkersID:  w.WorkersID,
		Source:     "import",
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("import event marshal failed", zap.Error(err))
		return
	}

	err = s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "worker",
		AggregateID:   w.ID.String(),
		EventType:     eventType,
		Topic:         events.WorkerLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("import event outbox persist failed",
			zap.String("worker_id", w.ID.String()),
			zap.Error(err),
		)
	}
}

// toRowMaps zips header names onto each data row. Short rows are
// common: trailing empty cells are simply absent.
func toRowMaps(headers []string, rows [][]string) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		m := make(map[string]string, len(headers))
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if h == "" || i >= len(row) {
				continue
			}
			m[h] = row[i]
		}
		out = append(out, m)
	}
	return out
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func capIssues(issues []string) []string {
	if len(issues) > maxReportedIssues {
		return issues[:maxReportedIssues]
	}
	return issues
}
