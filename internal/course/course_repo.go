package course

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Course) error
	FindByID(ctx context.Context, id string) (*Course, error)
	FindByName(ctx context.Context, name string) (*Course, error)
	FindAllActive(ctx context.Context) ([]Course, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, c *Course) error
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Course, error) {
	var c Course
	err := r.db.WithContext(ctx).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Course, error) {
	var c Course
	err := r.db.WithContext(ctx).
		First(&c, "LOWER(name) = LOWER(?)", name).Error
	return &c, err
}

func (r *repository) FindAllActive(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&courses).Error
	return courses, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Course{}).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, c *Course) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Course{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
