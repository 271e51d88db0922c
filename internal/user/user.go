package user

import (
	"errors"
	"time"

	"github.com/flowhr/flowhr/internal/auth"
	userDatamodel "github.com/flowhr/flowhr/internal/core/datamodel/user"
)

// Status is a user's employment state. Termination never deletes the
// record; a Fired user keeps their row and loses guarded access.
type Status string

const (
	StatusActive Status = "Active"
	StatusFired  Status = "Fired"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusFired
}

// User is the domain model. Role, Verified and Status are each owned by a
// different authority: Admin assigns role and status, HR toggles verified,
// and the user themselves only ever writes the profile fields.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        auth.Role `json:"role"`
	Verified    bool      `json:"verified"`
	Status      Status    `json:"status"`
	Designation string    `json:"designation,omitempty"`
	BankAccount string    `json:"bank_account,omitempty"`
	Salary      int64     `json:"salary,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) IsTerminated() bool {
	return u.Status == StatusFired
}

var ErrNotFound = errors.New("user not found")

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		Verified:    u.Verified,
		Status:      string(u.Status),
		Designation: u.Designation,
		BankAccount: u.BankAccount,
		Salary:      u.Salary,
		PhotoURL:    u.PhotoURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        auth.Role(u.Role),
		Verified:    u.Verified,
		Status:      Status(u.Status),
		Designation: u.Designation,
		BankAccount: u.BankAccount,
		Salary:      u.Salary,
		PhotoURL:    u.PhotoURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
