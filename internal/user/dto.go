package user

import (
	"strings"

	"github.com/flowhr/flowhr/internal/auth"
)

// RegisterDTO carries the caller-supplied profile for first registration.
// Role, verified and status are intentionally absent: a client can never
// set the protected fields through registration.
type RegisterDTO struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Designation string `json:"designation,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`
	Salary      int64  `json:"salary,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

type ProfileUpdateDTO struct {
	Name        string `json:"name,omitempty"`
	Designation string `json:"designation,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

type VerifiedDTO struct {
	Verified bool `json:"verified"`
}

type RoleDTO struct {
	Role string `json:"role"`
}

type StatusDTO struct {
	Status string `json:"status"`
}

type SalaryDTO struct {
	Salary int64 `json:"salary"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d RegisterDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is not valid"}
	}
	if d.Salary < 0 {
		return ValidationError{Msg: "salary cannot be negative"}
	}
	return nil
}

func (d RoleDTO) Validate() error {
	if _, err := auth.ParseRole(d.Role); err != nil {
		return ValidationError{Msg: "role must be one of Unassigned, Employee, HR, Admin"}
	}
	return nil
}

func (d StatusDTO) Validate() error {
	if !Status(d.Status).IsValid() {
		return ValidationError{Msg: "status must be Active or Fired"}
	}
	return nil
}

func (d SalaryDTO) Validate() error {
	if d.Salary <= 0 {
		return ValidationError{Msg: "salary must be positive"}
	}
	return nil
}
