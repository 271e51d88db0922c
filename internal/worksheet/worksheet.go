package worksheet

import (
	"context"
	"time"
)

// Entry is a single row of an employee's work sheet.
type Entry struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"column:email;index;not null"`
	Name      string    `json:"name" gorm:"column:name"`
	Task      string    `json:"task" gorm:"column:task"`
	Hours     float64   `json:"hours" gorm:"column:hours"`
	Date      time.Time `json:"date" gorm:"column:work_date"`
	Month     string    `json:"month" gorm:"column:month"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "worksheets"
}

// Filter narrows the all-works listing; zero values mean no filtering.
type Filter struct {
	Name  string
	Month string
}

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByEmail(ctx context.Context, email string) ([]*Entry, error)
	ListAll(ctx context.Context, filter Filter) ([]*Entry, error)
}
