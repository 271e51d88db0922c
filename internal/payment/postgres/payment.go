package postgres

import (
	"context"

	"github.com/flowhr/flowhr/internal/payment"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) payment.Repository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByEmail(ctx context.Context, email string, offset, limit int) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("year ASC, month ASC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) ListAllByEmail(ctx context.Context, email string) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("year ASC, month ASC").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&payment.Payment{}).
		Where("email = ?", email).
		Count(&count).Error
	return count, err
}
