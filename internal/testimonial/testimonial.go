package testimonial

import (
	"context"
	"time"
)

// Testimonial is a public quote shown on the landing page.
type Testimonial struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	Title     string    `json:"title" gorm:"column:title"`
	Quote     string    `json:"quote" gorm:"column:quote;not null"`
	PhotoURL  string    `json:"photo_url" gorm:"column:photo_url"`
	Rating    int       `json:"rating" gorm:"column:rating"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

type Repository interface {
	ListAll(ctx context.Context) ([]*Testimonial, error)
}
