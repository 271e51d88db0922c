package postgres

import (
	"context"

	"github.com/flowhr/flowhr/internal/worksheet"
	"gorm.io/gorm"
)

type WorksheetRepository struct {
	db *gorm.DB
}

func NewWorksheetRepository(db *gorm.DB) worksheet.Repository {
	return &WorksheetRepository{db: db}
}

func (r *WorksheetRepository) Create(ctx context.Context, e *worksheet.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *WorksheetRepository) ListByEmail(ctx context.Context, email string) ([]*worksheet.Entry, error) {
	var entries []*worksheet.Entry
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("work_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *WorksheetRepository) ListAll(ctx context.Context, filter worksheet.Filter) ([]*worksheet.Entry, error) {
	q := r.db.WithContext(ctx).Model(&worksheet.Entry{})
	if filter.Name != "" {
		q = q.Where("name = ?", filter.Name)
	}
	if filter.Month != "" {
		q = q.Where("month = ?", filter.Month)
	}

	var entries []*worksheet.Entry
	err := q.Order("work_date DESC").Find(&entries).Error
	return entries, err
}
