package worker

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pandiaraajan-hub/workerprolite/internal/certification"
	workererrors "github.com/pandiaraajan-hub/workerprolite/internal/worker/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn          func(ctx context.Context, w *Worker) error
	findByIDFn        func(ctx context.Context, id string) (*Worker, error)
	findByWorkersIDFn func(ctx context.Context, workersID string) (*Worker, error)
	findAllActiveFn   func(ctx context.Context) ([]Worker, error)
	searchFn          func(ctx context.Context, query string) ([]Worker, error)
	updateFn          func(ctx context.Context, w *Worker) error
	deactivateFn      func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, w *Worker) error {
	return f.createFn(ctx, w)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Worker, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByWorkersID(ctx context.Context, workersID string) (*Worker, error) {
	return f.findByWorkersIDFn(ctx, workersID)
}
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]Worker, error) {
	return f.findAllActiveFn(ctx)
}
func (f *fakeRepo) Search(ctx context.Context, query string) ([]Worker, error) {
	return f.searchFn(ctx, query)
}
func (f *fakeRepo) Update(ctx context.Context, w *Worker) error {
	return f.updateFn(ctx, w)
}
func (f *fakeRepo) Deactivate(ctx context.Context, id string) error {
	return f.deactivateFn(ctx, id)
}

type fakeCertService struct {
	byWorker map[string][]certification.CertificationResponse
	created  []certification.CreateCertificationRequest
}

func (f *fakeCertService) GetAll(ctx context.Context) ([]certification.CertificationResponse, error) {
	return nil, nil
}
func (f *fakeCertService) GetByWorker(ctx context.Context, workerID string) ([]certification.CertificationResponse, error) {
	return f.byWorker[workerID], nil
}
func (f *fakeCertService) GetExpiring(ctx context.Context, days int) ([]certification.CertificationResponse, error) {
	return nil, nil
}
func (f *fakeCertService) Create(ctx context.Context, workerID string, req certification.CreateCertificationRequest) (certification.CertificationResponse, error) {
	f.created = append(f.created, req)
	return certification.CertificationResponse{
		ID:       uuid.NewString(),
		WorkerID: workerID,
		CourseID: req.CourseID,
		Name:     req.Name,
		Status:   string(certification.StatusActive),
	}, nil
}
func (f *fakeCertService) Update(ctx context.Context, id string, req certification.UpdateCertificationRequest) (certification.CertificationResponse, error) {
	return certification.CertificationResponse{}, nil
}
func (f *fakeCertService) Delete(ctx context.Context, id string) error { return nil }

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	var saved Worker
	repo := &fakeRepo{
		createFn: func(ctx context.Context, w *Worker) error {
			saved = *w
			return nil
		},
	}
	certs := &fakeCertService{byWorker: map[string][]certification.CertificationResponse{}}
	svc := NewService(db, repo, certs)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(ctx, CreateWorkerRequest{
		WorkersID:     "W001",
		NameOfWorkers: "Alice Tan",
		Designation:   "Supervisor",
		DateOfExpiry:  "2026-01-10",
		Certifications: []certification.CreateCertificationRequest{
			{CourseID: uuid.NewString(), Name: "First Aid"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "W001", resp.WorkersID)
	assert.Equal(t, "2026-01-10", resp.DateOfExpiry)
	assert.True(t, resp.IsActive)
	assert.Len(t, resp.Certifications, 1)
	assert.Len(t, certs.created, 1)
	assert.True(t, saved.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateWorkersID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, w *Worker) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_workers_workers_id"}
		},
	}
	svc := NewService(db, repo, &fakeCertService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(ctx, CreateWorkerRequest{
		WorkersID:     "W001",
		NameOfWorkers: "Alice Tan",
	})

	assert.ErrorIs(t, err, workererrors.ErrWorkersIDExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidDate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCertService{})

	_, err := svc.Create(context.Background(), CreateWorkerRequest{
		WorkersID:     "W001",
		NameOfWorkers: "Alice Tan",
		DateOfExpiry:  "10/01/2026",
	})

	assert.ErrorIs(t, err, workererrors.ErrInvalidDate)
}

func TestService_Update_PartialFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	id := uuid.New()
	stored := Worker{
		ID:            id,
		WorkersID:     "W001",
		NameOfWorkers: "Alice Tan",
		Designation:   "Supervisor",
		Nationality:   "Singaporean",
		IsActive:      true,
	}

	var updated Worker
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, lookupID string) (*Worker, error) {
			cp := stored
			return &cp, nil
		},
		updateFn: func(ctx context.Context, w *Worker) error {
			updated = *w
			return nil
		},
	}
	svc := NewService(db, repo, &fakeCertService{byWorker: map[string][]certification.CertificationResponse{}})

	mock.ExpectBegin()
	mock.ExpectCommit()

	designation := "Senior Supervisor"
	resp, err := svc.Update(ctx, id.String(), UpdateWorkerRequest{
		Designation: &designation,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Senior Supervisor", resp.Designation)
	assert.Equal(t, "Senior Supervisor", updated.Designation)
	// untouched fields survive
	assert.Equal(t, "Alice Tan", updated.NameOfWorkers)
	assert.Equal(t, "Singaporean", updated.Nationality)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Worker, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, repo, &fakeCertService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	name := "Ghost"
	_, err := svc.Update(context.Background(), uuid.NewString(), UpdateWorkerRequest{
		NameOfWorkers: &name,
	})

	assert.ErrorIs(t, err, workererrors.ErrWorkerNotFound)
}

func TestService_Search_RequiresQuery(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCertService{})

	_, err := svc.Search(context.Background(), "")
	assert.ErrorIs(t, err, workererrors.ErrSearchQueryRequired)
}

func TestService_GetAll_EmbedsCertifications(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	ctx := context.Background()

	id := uuid.New()
	expiry := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		findAllActiveFn: func(ctx context.Context) ([]Worker, error) {
			return []Worker{{
				ID:            id,
				WorkersID:     "W001",
				NameOfWorkers: "Alice Tan",
				DateOfExpiry:  &expiry,
				IsActive:      true,
			}}, nil
		},
	}
	certs := &fakeCertService{byWorker: map[string][]certification.CertificationResponse{
		id.String(): {{ID: uuid.NewString(), Name: "First Aid", Status: "active"}},
	}}
	svc := NewService(db, repo, certs)

	resp, err := svc.GetAll(ctx)
	assert.NoError(t, err)
	if assert.Len(t, resp, 1) {
		assert.Equal(t, "2026-03-01", resp[0].DateOfExpiry)
		assert.Len(t, resp[0].Certifications, 1)
	}
}
