package stats

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
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeWorkerRepo struct {
	workers []worker.Worker
	err     error
}

func (f *fakeWorkerRepo) WithTx(tx *sql.Tx) worker.Repository { return f }
func (f *fakeWorkerRepo) Create(ctx context.Context, w *worker.Worker) error {
	return nil
}
func (f *fakeWorkerRepo) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeWorkerRepo) FindByWorkersID(ctx context.Context, workersID string) (*worker.Worker, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeWorkerRepo) FindAllActive(ctx context.Context) ([]worker.Worker, error) {
	return f.workers, f.err
}
func (f *fakeWorkerRepo) Search(ctx context.Context, query string) ([]worker.Worker, error) {
	return nil, nil
}
func (f *fakeWorkerRepo) Update(ctx context.Context, w *worker.Worker) error { return nil }
func (f *fakeWorkerRepo) Deactivate(ctx context.Context, id string) error    { return nil }

type fakeCertRepo struct {
	certs []certification.Certification
}

func (f *fakeCertRepo) Create(ctx context.Context, cert *certification.Certification) error {
	return nil
}
func (f *fakeCertRepo) FindByID(ctx context.Context, id string) (*certification.Certification, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCertRepo) FindAll(ctx context.Context) ([]certification.Certification, error) {
	return f.certs, nil
}
func (f *fakeCertRepo) FindByWorker(ctx context.Context, workerID string) ([]certification.Certification, error) {
	return nil, nil
}
func (f *fakeCertRepo) FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]certification.Certification, error) {
	return nil, nil
}
func (f *fakeCertRepo) Update(ctx context.Context, cert *certification.Certification) error {
	return nil
}
func (f *fakeCertRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeCourseRepo struct {
	count int64
}

func (f *fakeCourseRepo) Create(ctx context.Context, c *course.Course) error { return nil }
func (f *fakeCourseRepo) FindByID(ctx context.Context, id string) (*course.Course, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCourseRepo) FindByName(ctx context.Context, name string) (*course.Course, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCourseRepo) FindAllActive(ctx context.Context) ([]course.Course, error) {
	return nil, nil
}
func (f *fakeCourseRepo) Count(ctx context.Context) (int64, error)           { return f.count, nil }
func (f *fakeCourseRepo) Update(ctx context.Context, c *course.Course) error { return nil }
func (f *fakeCourseRepo) Deactivate(ctx context.Context, id string) error    { return nil }

func TestService_GetStats(t *testing.T) {
	soon := time.Now().AddDate(0, 0, 15)
	past := time.Now().AddDate(0, 0, -15)

	svc := NewService(
		&fakeWorkerRepo{workers: []worker.Worker{
			{ID: uuid.New(), WorkersID: "W001", DateOfExpiry: &soon},
			{ID: uuid.New(), WorkersID: "W002"},
		}},
		&fakeCertRepo{certs: []certification.Certification{
			{ID: uuid.New(), ExpiryDate: &past},
			{ID: uuid.New()},
		}},
		&fakeCourseRepo{count: 29},
	)

	got, err := svc.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, got.TotalWorkers)
	assert.Equal(t, 29, got.ActiveCourses)
	assert.Equal(t, 2, got.TotalCertifications)
	assert.Equal(t, 1, got.Expired)
	assert.Equal(t, 1, got.PermitExpiringSoon)
}

func TestService_GetStats_RepositoryError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&fakeWorkerRepo{err: boom}, &fakeCertRepo{}, &fakeCourseRepo{})

	_, err := svc.GetStats(context.Background())
	assert.ErrorIs(t, err, boom)
}
