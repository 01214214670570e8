package worker

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, w *Worker) error
	FindByID(ctx context.Context, id string) (*Worker, error)
	FindByWorkersID(ctx context.Context, workersID string) (*Worker, error)
	FindAllActive(ctx context.Context) ([]Worker, error)
	Search(ctx context.Context, query string) ([]Worker, error)
	Update(ctx context.Context, w *Worker) error
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).
		First(&w, "id = ?", id).Error
	return &w, err
}

func (r *repository) FindByWorkersID(ctx context.Context, workersID string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).
		First(&w, "workers_id = ?", workersID).Error
	return &w, err
}

func (r *repository) FindAllActive(ctx context.Context) ([]Worker, error) {
	var workers []Worker
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name_of_workers ASC").
		Find(&workers).Error
	return workers, err
}

func (r *repository) Search(ctx context.Context, query string) ([]Worker, error) {
	var workers []Worker
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(`LOWER(name_of_workers) LIKE ?
			OR LOWER(workers_id) LIKE ?
			OR LOWER(designation) LIKE ?
			OR LOWER(contact_no) LIKE ?
			OR LOWER(nationality) LIKE ?
			OR LOWER(nric_fin_no) LIKE ?`,
			pattern, pattern, pattern, pattern, pattern, pattern).
		Find(&workers).Error
	return workers, err
}

func (r *repository) Update(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Worker{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
