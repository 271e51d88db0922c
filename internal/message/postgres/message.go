package postgres

import (
	"context"

	"github.com/flowhr/flowhr/internal/message"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) message.Repository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, e *message.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *MessageRepository) ListAll(ctx context.Context) ([]*message.Entry, error) {
	var entries []*message.Entry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
