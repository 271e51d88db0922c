package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/auth"
)

// Repository is the persistence port for user records. CreateIfAbsent must
// be atomic on the unique email key so concurrent first registrations
// converge to one row.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ListVerified(ctx context.Context) ([]*User, error)
	CreateIfAbsent(ctx context.Context, u *User) (*User, bool, error)
	UpdateProfile(ctx context.Context, id int64, dto ProfileUpdateDTO) error
	SetVerified(ctx context.Context, id int64, verified bool) error
	SetRole(ctx context.Context, id int64, role auth.Role) error
	SetStatus(ctx context.Context, id int64, status Status) error
	SetSalary(ctx context.Context, id int64, salary int64) error
}

// BlockChecker reports whether an email is on the deny list.
type BlockChecker interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
}

// Service owns the user lifecycle state machine. All transitions are
// monotonic updates; nothing here deletes a record.
type Service struct {
	repo        Repository
	blocklist   BlockChecker
	rejectFired bool
	logger      *slog.Logger
}

func NewService(repo Repository, blocklist BlockChecker, rejectFired bool, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		blocklist:   blocklist,
		rejectFired: rejectFired,
		logger:      logger,
	}
}

// Register is the idempotent upsert-by-email entry point. A blocked email
// is refused outright. An existing record is returned unchanged so a
// returning user's stale client payload cannot clobber server-assigned
// role or status. Only a genuinely new record gets the defaults.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	blocked, err := s.blocklist.IsBlocked(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to check block list", err)
	}
	if blocked {
		s.logger.Warn("registration refused for blocked email", "email", dto.Email)
		return nil, internal.ErrEmailBlocked
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, internal.NewInternalError("failed to look up user", err)
	}
	if existing != nil {
		if s.rejectFired && existing.IsTerminated() {
			s.logger.Warn("registration refused for terminated user", "email", dto.Email)
			return nil, internal.NewForbiddenError("this account has been terminated", internal.ErrCodeUserTerminated)
		}
		return existing, nil
	}

	u := &User{
		Email:       dto.Email,
		Name:        dto.Name,
		Role:        auth.RoleUnassigned,
		Verified:    false,
		Status:      StatusActive,
		Designation: dto.Designation,
		BankAccount: dto.BankAccount,
		Salary:      dto.Salary,
		PhotoURL:    dto.PhotoURL,
	}

	created, inserted, err := s.repo.CreateIfAbsent(ctx, u)
	if err != nil {
		return nil, internal.NewInternalError("failed to register user", err)
	}
	if !inserted {
		// Lost a concurrent first-registration race; the winner's record
		// stands and this payload's defaults are discarded.
		s.logger.Info("registration converged on existing record", "email", dto.Email)
	}
	return created, nil
}

// ResolveRole implements auth.RoleResolver with a fresh store read per
// call. No caching: a role edit must bite on the next request.
func (s *Service) ResolveRole(ctx context.Context, email string) (*auth.Subject, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("resolve role: %w", err)
	}
	return &auth.Subject{
		Email:      u.Email,
		Role:       u.Role,
		Terminated: u.IsTerminated(),
	}, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

func (s *Service) ListVerified(ctx context.Context, verifiedOnly bool) ([]*User, error) {
	if !verifiedOnly {
		return s.List(ctx)
	}
	users, err := s.repo.ListVerified(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list verified users", err)
	}
	return users, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, dto ProfileUpdateDTO) error {
	if err := s.repo.UpdateProfile(ctx, id, dto); err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrUserNotFound
		}
		return internal.NewInternalError("failed to update profile", err)
	}
	return nil
}

// SetVerified toggles the HR trust flag, independent of role and status.
func (s *Service) SetVerified(ctx context.Context, id int64, dto VerifiedDTO) error {
	if err := s.repo.SetVerified(ctx, id, dto.Verified); err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrUserNotFound
		}
		return internal.NewInternalError("failed to update verified flag", err)
	}
	s.logger.Info("verified flag updated", "user_id", id, "verified", dto.Verified)
	return nil
}

// SetRole assigns any of the four roles. There is no transition table:
// every role is reachable from every other, by design.
func (s *Service) SetRole(ctx context.Context, id int64, dto RoleDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeInvalidRole)
	}
	role, _ := auth.ParseRole(dto.Role)
	if err := s.repo.SetRole(ctx, id, role); err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrUserNotFound
		}
		return internal.NewInternalError("failed to update role", err)
	}
	s.logger.Info("role updated", "user_id", id, "role", role)
	return nil
}

// SetStatus records termination (or reinstatement). The record survives;
// guards read the live status and shut the door from the next request on.
func (s *Service) SetStatus(ctx context.Context, id int64, dto StatusDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeInvalidStatus)
	}
	if err := s.repo.SetStatus(ctx, id, Status(dto.Status)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrUserNotFound
		}
		return internal.NewInternalError("failed to update status", err)
	}
	s.logger.Info("status updated", "user_id", id, "status", dto.Status)
	return nil
}

func (s *Service) SetSalary(ctx context.Context, id int64, dto SalaryDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeInvalidAmount)
	}
	if err := s.repo.SetSalary(ctx, id, dto.Salary); err != nil {
		if errors.Is(err, ErrNotFound) {
			return internal.ErrUserNotFound
		}
		return internal.NewInternalError("failed to update salary", err)
	}
	return nil
}
