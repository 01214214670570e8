package certification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, cert *Certification) error
	FindByID(ctx context.Context, id string) (*Certification, error)
	FindAll(ctx context.Context) ([]Certification, error)
	FindByWorker(ctx context.Context, workerID string) ([]Certification, error)
	FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]Certification, error)
	Update(ctx context.Context, cert *Certification) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cert *Certification) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Certification, error) {
	var cert Certification
	err := r.db.WithContext(ctx).
		Preload("Course").
		First(&cert, "id = ?", id).Error
	return &cert, err
}

func (r *repository) FindAll(ctx context.Context) ([]Certification, error) {
	var certs []Certification
	err := r.db.WithContext(ctx).
		Preload("Course").
		Find(&certs).Error
	return certs, err
}

func (r *repository) FindByWorker(ctx context.Context, workerID string) ([]Certification, error) {
	var certs []Certification
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("worker_id = ?", workerID).
		Find(&certs).Error
	return certs, err
}

func (r *repository) FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]Certification, error) {
	var certs []Certification
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", cutoff).
		Find(&certs).Error
	return certs, err
}

func (r *repository) Update(ctx context.Context, cert *Certification) error {
	return r.db.WithContext(ctx).Save(cert).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Certification{}, "id = ?", id).Error
}
