package payment

import (
	"context"
	"time"
)

// Payment is a stored salary payment record, written by HR after a
// successful gateway confirmation.
type Payment struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"column:email;index;not null"`
	Name          string    `json:"name" gorm:"column:name"`
	Month         string    `json:"month" gorm:"column:month"`
	Year          int       `json:"year" gorm:"column:year"`
	Amount        int64     `json:"amount" gorm:"column:amount"`
	TransactionID string    `json:"transaction_id" gorm:"column:transaction_id;uniqueIndex"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// Repository is the persistence port for payment history.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByEmail(ctx context.Context, email string, offset, limit int) ([]*Payment, error)
	ListAllByEmail(ctx context.Context, email string) ([]*Payment, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
}

// IntentCreator is the gateway port: amount in, opaque client secret out.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (clientSecret string, err error)
}
