package auth

import "strings"

// TokenRequestDTO is the identity claim a client posts to obtain a
// session credential.
type TokenRequestDTO struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d TokenRequestDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is not valid"}
	}
	return nil
}
