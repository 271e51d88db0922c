package message

import (
	"context"
	"time"
)

// Entry is a contact-us message left by a visitor or employee.
type Entry struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"column:email;not null"`
	Message   string    `json:"message" gorm:"column:message;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "messages"
}

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListAll(ctx context.Context) ([]*Entry, error)
}
