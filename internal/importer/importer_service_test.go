package importer

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	"github.com/pandiaraajan-hub/workerprolite/internal/course"
	"github.com/pandiaraajan-hub/workerprolite/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// fakeWorkerRepo keeps workers in memory and raises the same unique
// violation the database would on a duplicate workers id.
type fakeWorkerRepo struct {
	byWorkersID map[string]*worker.Worker
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{byWorkersID: map[string]*worker.Worker{}}
}

func (f *fakeWorkerRepo) WithTx(tx *sql.Tx) worker.Repository { return f }

func (f *fakeWorkerRepo) Create(ctx context.Context, w *worker.Worker) error {
	if _, ok := f.byWorkersID[w.WorkersID]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_workers_workers_id"}
	}
	cp := *w
	f.byWorkersID[w.WorkersID] = &cp
	return nil
}

func (f *fakeWorkerRepo) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	for _, w := range f.byWorkersID {
		if w.ID.String() == id {
			cp := *w
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerRepo) FindByWorkersID(ctx context.Context, workersID string) (*worker.Worker, error) {
	if w, ok := f.byWorkersID[workersID]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerRepo) FindAllActive(ctx context.Context) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range f.byWorkersID {
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Search(ctx context.Context, query string) ([]worker.Worker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w *worker.Worker) error {
	cp := *w
	f.byWorkersID[w.WorkersID] = &cp
	return nil
}

func (f *fakeWorkerRepo) Deactivate(ctx context.Context, id string) error { return nil }

type fakeCertRepo struct {
	certs       []certification.Certification
	failCreates int
}

func (f *fakeCertRepo) Create(ctx context.Context, cert *certification.Certification) error {
	if f.failCreates > 0 {
		f.failCreates--
		return errors.New("connection reset by peer")
	}
	f.certs = append(f.certs, *cert)
	return nil
}

func (f *fakeCertRepo) FindByID(ctx context.Context, id string) (*certification.Certification, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCertRepo) FindAll(ctx context.Context) ([]certification.Certification, error) {
	return append([]certification.Certification(nil), f.certs...), nil
}

func (f *fakeCertRepo) FindByWorker(ctx context.Context, workerID string) ([]certification.Certification, error) {
	var out []certification.Certification
	for _, c := range f.certs {
		if c.WorkerID.String() == workerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCertRepo) FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]certification.Certification, error) {
	return nil, nil
}

func (f *fakeCertRepo) Update(ctx context.Context, cert *certification.Certification) error {
	for i := range f.certs {
		if f.certs[i].ID == cert.ID {
			f.certs[i] = *cert
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCertRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeCourseService struct {
	catalog map[string]course.Course
}

func (f *fakeCourseService) GetAll(ctx context.Context) ([]course.CourseResponse, error) {
	return nil, nil
}
func (f *fakeCourseService) GetOptions(ctx context.Context) ([]course.CourseResponse, error) {
	return nil, nil
}
func (f *fakeCourseService) Catalog(ctx context.Context) (map[string]course.Course, error) {
	return f.catalog, nil
}
func (f *fakeCourseService) Create(ctx context.Context, req course.CreateCourseRequest) (course.CourseResponse, error) {
	return course.CourseResponse{}, nil
}
func (f *fakeCourseService) Update(ctx context.Context, id string, req course.UpdateCourseRequest) (course.CourseResponse, error) {
	return course.CourseResponse{}, nil
}
func (f *fakeCourseService) Deactivate(ctx context.Context, id string) error { return nil }

// fakeCertService only needs GetByWorker for summary shaping.
type fakeCertService struct {
	repo *fakeCertRepo
}

func (f *fakeCertService) GetAll(ctx context.Context) ([]certification.CertificationResponse, error) {
	return nil, nil
}

func (f *fakeCertService) GetByWorker(ctx context.Context, workerID string) ([]certification.CertificationResponse, error) {
	certs, _ := f.repo.FindByWorker(ctx, workerID)
	out := make([]certification.CertificationResponse, len(certs))
	for i, c := range certs {
		out[i] = certification.CertificationResponse{
			ID:       c.ID.String(),
			WorkerID: c.WorkerID.String(),
			CourseID: c.CourseID.String(),
			Name:     c.Name,
			Status:   string(certification.DeriveStatus(c.ExpiryDate, time.Now())),
		}
	}
	return out, nil
}

func (f *fakeCertService) GetExpiring(ctx context.Context, days int) ([]certification.CertificationResponse, error) {
	return nil, nil
}

func (f *fakeCertService) Create(ctx context.Context, workerID string, req certification.CreateCertificationRequest) (certification.CertificationResponse, error) {
	return certification.CertificationResponse{}, nil
}

func (f *fakeCertService) Update(ctx context.Context, id string, req certification.UpdateCertificationRequest) (certification.CertificationResponse, error) {
	return certification.CertificationResponse{}, nil
}

func (f *fakeCertService) Delete(ctx context.Context, id string) error { return nil }

func newImportFixture() (Service, *fakeWorkerRepo, *fakeCertRepo) {
	workerRepo := newFakeWorkerRepo()
	certRepo := &fakeCertRepo{}
	courseSvc := &fakeCourseService{catalog: testCatalog()}
	certSvc := &fakeCertService{repo: certRepo}
	svc := NewService(workerRepo, certRepo, courseSvc, certSvc, nil)
	return svc, workerRepo, certRepo
}

func TestImportRows_MixedBatch(t *testing.T) {
	svc, workerRepo, certRepo := newImportFixture()
	ctx := context.Background()

	headers := []string{"Workers ID", "Name of Workers", "Designation", "First Aid"}
	rows := [][]string{
		{"W001", "Alice Tan", "Supervisor", "15/06/2025"},
		{"", "No Identity", "", ""},
		{"W002", "Bob Lim", "Welder", ""},
	}

	summary, diagnostics, err := svc.ImportRows(ctx, headers, rows)
	assert.NoError(t, err)
	assert.Nil(t, diagnostics)
	if !assert.NotNil(t, summary) {
		return
	}

	assert.Equal(t, 2, summary.Stats.WorkersProcessed)
	assert.Equal(t, 1, summary.Stats.Skipped)
	assert.Equal(t, 1, summary.Stats.CertificationsCreated)
	assert.Equal(t, 3, summary.Stats.TotalRows)
	assert.Len(t, summary.Workers, 2)

	alice, err := workerRepo.FindByWorkersID(ctx, "W001")
	assert.NoError(t, err)
	certs, _ := certRepo.FindByWorker(ctx, alice.ID.String())
	if assert.Len(t, certs, 1) {
		assert.Equal(t, "First Aid", certs[0].Name)
		if assert.NotNil(t, certs[0].ExpiryDate) {
			assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *certs[0].ExpiryDate)
		}
	}
}

func TestImportRows_CertificationFailureDoesNotAbortRow(t *testing.T) {
	svc, workerRepo, certRepo := newImportFixture()
	certRepo.failCreates = 1
	ctx := context.Background()

	headers := []string{"Workers ID", "Name of Workers", "First Aid", "SPIC"}
	rows := [][]string{{"W001", "Alice Tan", "15/06/2025", "20/08/2026"}}

	summary, diagnostics, err := svc.ImportRows(ctx, headers, rows)
	assert.NoError(t, err)
	assert.Nil(t, diagnostics)
	if !assert.NotNil(t, summary) {
		return
	}

	assert.Equal(t, 1, summary.Stats.WorkersProcessed)
	assert.Equal(t, 1, summary.Stats.CertificationsCreated)

	alice, err := workerRepo.FindByWorkersID(ctx, "W001")
	assert.NoError(t, err)
	certs, _ := certRepo.FindByWorker(ctx, alice.ID.String())
	if assert.Len(t, certs, 1) {
		assert.Equal(t, "SPIC", certs[0].Name)
	}
}

func TestImportRows_ReimportMergesInsteadOfDuplicating(t *testing.T) {
	svc, workerRepo, certRepo := newImportFixture()
	ctx := context.Background()

	headers := []string{"Workers ID", "Name of Workers", "Designation", "First Aid"}
	first := [][]string{{"W001", "Alice Tan", "Supervisor", "15/06/2025"}}
	second := [][]string{{"W001", "Alice Tan", "Senior Supervisor", "20/08/2026"}}

	_, _, err := svc.ImportRows(ctx, headers, first)
	assert.NoError(t, err)
	existing, err := workerRepo.FindByWorkersID(ctx, "W001")
	assert.NoError(t, err)
	originalID := existing.ID

	summary, diagnostics, err := svc.ImportRows(ctx, headers, second)
	assert.NoError(t, err)
	assert.Nil(t, diagnostics)
	assert.Equal(t, 1, summary.Stats.WorkersProcessed)

	assert.Len(t, workerRepo.byWorkersID, 1)
	merged, err := workerRepo.FindByWorkersID(ctx, "W001")
	assert.NoError(t, err)
	assert.Equal(t, originalID, merged.ID)
	assert.Equal(t, "Senior Supervisor", merged.Designation)

	certs, _ := certRepo.FindByWorker(ctx, originalID.String())
	if assert.Len(t, certs, 1) {
		if assert.NotNil(t, certs[0].ExpiryDate) {
			assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), *certs[0].ExpiryDate)
		}
	}
}

func TestImportRows_MergeKeepsStoredDatesWhenSheetOmitsThem(t *testing.T) {
	svc, workerRepo, _ := newImportFixture()
	ctx := context.Background()

	expiry := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	seeded := &worker.Worker{
		ID:            uuid.New(),
		WorkersID:     "W001",
		NameOfWorkers: "Alice Tan",
		DateOfExpiry:  &expiry,
		IsActive:      true,
	}
	assert.NoError(t, workerRepo.Create(ctx, seeded))

	headers := []string{"Workers ID", "Name of Workers"}
	rows := [][]string{{"W001", "Alice Tan Mei Ling"}}

	_, _, err := svc.ImportRows(ctx, headers, rows)
	assert.NoError(t, err)

	merged, err := workerRepo.FindByWorkersID(ctx, "W001")
	assert.NoError(t, err)
	assert.Equal(t, "Alice Tan Mei Ling", merged.NameOfWorkers)
	if assert.NotNil(t, merged.DateOfExpiry) {
		assert.Equal(t, expiry, *merged.DateOfExpiry)
	}
}

func TestImportRows_NoValidRowsReturnsDiagnostics(t *testing.T) {
	svc, _, _ := newImportFixture()
	ctx := context.Background()

	headers := []string{"Employee Code", "Full Name"}
	rows := [][]string{
		{"E1", "Alice"},
		{"E2", "Bob"},
	}

	summary, diagnostics, err := svc.ImportRows(ctx, headers, rows)
	assert.NoError(t, err)
	assert.Nil(t, summary)
	if !assert.NotNil(t, diagnostics) {
		return
	}

	assert.Equal(t, 2, diagnostics.TotalRows)
	assert.Equal(t, headers, diagnostics.AvailableColumns)
	assert.Equal(t, RequiredColumns, diagnostics.RequiredColumns)
	assert.NotEmpty(t, diagnostics.Issues)
	assert.LessOrEqual(t, len(diagnostics.Issues), 5)
	assert.Contains(t, diagnostics.AcceptedVariations, "Workers ID")
}
