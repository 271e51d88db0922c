package payment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/flowhr/flowhr/internal"
	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	gateway IntentCreator
	logger  *slog.Logger
}

func NewService(repo Repository, gateway IntentCreator, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		logger:  logger,
	}
}

// CreateIntent converts a salary to cents and asks the processor for a
// payment intent. Only the opaque client secret travels back to the
// frontend.
func (s *Service) CreateIntent(ctx context.Context, dto IntentDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", internal.NewValidationError(err.Error(), internal.ErrCodeInvalidAmount)
	}

	clientSecret, err := s.gateway.CreateIntent(ctx, dto.AmountCents())
	if err != nil {
		s.logger.Error("payment intent creation failed", "error", err)
		return "", internal.NewExternalError("payment processor unavailable", err)
	}

	return clientSecret, nil
}

// Record stores a completed salary payment. A missing transaction id gets
// a generated one so history rows stay uniquely addressable.
func (s *Service) Record(ctx context.Context, dto RecordDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	txID := strings.TrimSpace(dto.TransactionID)
	if txID == "" {
		txID = uuid.NewString()
	}

	p := &Payment{
		Email:         dto.Email,
		Name:          dto.Name,
		Month:         dto.Month,
		Year:          dto.Year,
		Amount:        dto.Amount,
		TransactionID: txID,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, internal.NewInternalError("failed to record payment", err)
	}

	s.logger.Info("payment recorded", "email", p.Email, "month", p.Month, "year", p.Year)
	return p, nil
}

// History returns one page of a user's payment history, oldest month
// first, mirroring the frontend's pagination contract.
func (s *Service) History(ctx context.Context, email string, page, size int) ([]*Payment, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 5
	}

	payments, err := s.repo.ListByEmail(ctx, email, (page-1)*size, size)
	if err != nil {
		return nil, internal.NewInternalError("failed to load payment history", err)
	}
	return payments, nil
}

func (s *Service) Count(ctx context.Context, email string) (int64, error) {
	count, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		return 0, internal.NewInternalError("failed to count payments", err)
	}
	return count, nil
}

func (s *Service) DetailsByEmail(ctx context.Context, email string) ([]*Payment, error) {
	payments, err := s.repo.ListAllByEmail(ctx, email)
	if err != nil {
		return nil, internal.NewInternalError("failed to load payment details", err)
	}
	return payments, nil
}
