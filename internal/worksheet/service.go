package worksheet

import (
	"context"
	"log/slog"
	"time"

	"github.com/flowhr/flowhr/internal"
)

type EntryDTO struct {
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Task  string  `json:"task"`
	Hours float64 `json:"hours"`
	Date  string  `json:"date"`
	Month string  `json:"month"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d EntryDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Task == "" {
		return ValidationError{Msg: "task is required"}
	}
	if d.Hours <= 0 {
		return ValidationError{Msg: "hours must be positive"}
	}
	return nil
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Submit(ctx context.Context, dto EntryDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	e := &Entry{
		Email: dto.Email,
		Name:  dto.Name,
		Task:  dto.Task,
		Hours: dto.Hours,
		Month: dto.Month,
	}
	if dto.Date != "" {
		if t, err := parseDate(dto.Date); err == nil {
			e.Date = t
		}
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, internal.NewInternalError("failed to save work entry", err)
	}
	return e, nil
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]*Entry, error) {
	entries, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, internal.NewInternalError("failed to list work entries", err)
	}
	return entries, nil
}

func (s *Service) ListAll(ctx context.Context, filter Filter) ([]*Entry, error) {
	entries, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, internal.NewInternalError("failed to list work entries", err)
	}
	return entries, nil
}

// parseDate accepts the frontend's date formats; RFC 3339 first, then a
// bare calendar date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
