package message

import (
	"context"
	"log/slog"
	"strings"

	"github.com/flowhr/flowhr/internal"
)

type EntryDTO struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d EntryDTO) Validate() error {
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "a valid email is required"}
	}
	if strings.TrimSpace(d.Message) == "" {
		return ValidationError{Msg: "message is required"}
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
		Email:   dto.Email,
		Message: strings.TrimSpace(dto.Message),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, internal.NewInternalError("failed to save message", err)
	}
	return e, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*Entry, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list messages", err)
	}
	return entries, nil
}
