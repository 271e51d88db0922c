package postgres

import (
	"context"

	"github.com/flowhr/flowhr/internal/testimonial"
	"gorm.io/gorm"
)

type TestimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) testimonial.Repository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) ListAll(ctx context.Context) ([]*testimonial.Testimonial, error) {
	var out []*testimonial.Testimonial
	err := r.db.WithContext(ctx).
		Order("rating DESC, created_at DESC").
		Find(&out).Error
	return out, err
}
