package user

import "time"

// User is the persistence model for the users table.
type User struct {
	ID          int64     `gorm:"primaryKey"`
	Email       string    `gorm:"column:email;uniqueIndex;not null"`
	Name        string    `gorm:"column:name"`
	Role        string    `gorm:"column:role;not null;default:Unassigned"`
	Verified    bool      `gorm:"column:verified;not null;default:false"`
	Status      string    `gorm:"column:status;not null;default:Active"`
	Designation string    `gorm:"column:designation"`
	BankAccount string    `gorm:"column:bank_account"`
	Salary      int64     `gorm:"column:salary"`
	PhotoURL    string    `gorm:"column:photo_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
