package blocklist

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/flowhr/flowhr/internal"
)

// Entry is a standalone deny-list record. Its existence alone rejects the
// email at token issuance and registration, regardless of whatever state
// the primary user record holds.
type Entry struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Reason    string    `json:"reason,omitempty" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	Exists(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*Entry, error)
}

type BlockDTO struct {
	Email  string `json:"email"`
	Reason string `json:"reason,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d BlockDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is not valid"}
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

// Block adds an email to the deny list. Blocking twice is idempotent.
func (s *Service) Block(ctx context.Context, dto BlockDTO) (*Entry, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidEmail)
	}

	entry := &Entry{Email: dto.Email, Reason: dto.Reason}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, internal.NewInternalError("failed to block user", err)
	}

	s.logger.Info("email blocked", "email", dto.Email)
	return entry, nil
}

// IsBlocked implements the BlockChecker port used by token issuance and
// registration.
func (s *Service) IsBlocked(ctx context.Context, email string) (bool, error) {
	return s.repo.Exists(ctx, email)
}

// Lookup returns the entry for an email, or nil when it is not blocked.
func (s *Service) Lookup(ctx context.Context, email string) (*Entry, error) {
	entry, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up block entry", err)
	}
	return entry, nil
}
