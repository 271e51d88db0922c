package testimonial

import (
	"context"
	"log/slog"

	"github.com/flowhr/flowhr/internal"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListAll(ctx context.Context) ([]*Testimonial, error) {
	testimonials, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list testimonials", err)
	}
	return testimonials, nil
}
