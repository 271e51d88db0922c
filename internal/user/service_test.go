package user

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Module Suite")
}

type mockRepository struct {
	byEmail map[string]*User
	byID    map[int64]*User
	nextID  int64
	err     error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		byEmail: map[string]*User{},
		byID:    map[int64]*User{},
		nextID:  1,
	}
}

func (m *mockRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepository) List(_ context.Context) ([]*User, error) {
	out := make([]*User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockRepository) ListVerified(_ context.Context) ([]*User, error) {
	var out []*User
	for _, u := range m.byID {
		if u.Verified {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockRepository) CreateIfAbsent(_ context.Context, u *User) (*User, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	if existing, ok := m.byEmail[u.Email]; ok {
		return existing, false, nil
	}
	u.ID = m.nextID
	m.nextID++
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return u, true, nil
}

func (m *mockRepository) UpdateProfile(_ context.Context, id int64, dto ProfileUpdateDTO) error {
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	if dto.Name != "" {
		u.Name = dto.Name
	}
	return nil
}

func (m *mockRepository) SetVerified(_ context.Context, id int64, verified bool) error {
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Verified = verified
	return nil
}

func (m *mockRepository) SetRole(_ context.Context, id int64, role auth.Role) error {
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *mockRepository) SetStatus(_ context.Context, id int64, status Status) error {
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Status = status
	return nil
}

func (m *mockRepository) SetSalary(_ context.Context, id int64, salary int64) error {
	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Salary = salary
	return nil
}

type mockBlockChecker struct {
	blocked map[string]bool
	err     error
}

func (m *mockBlockChecker) IsBlocked(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.blocked[email], nil
}

var _ = Describe("User Service", func() {
	var (
		repo      *mockRepository
		blocklist *mockBlockChecker
		service   *Service
		ctx       = context.Background()
	)

	BeforeEach(func() {
		repo = newMockRepository()
		blocklist = &mockBlockChecker{blocked: map[string]bool{}}
		service = NewService(repo, blocklist, false, slog.Default())
	})

	Describe("Register", func() {
		It("creates a new user with protected defaults", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com", Name: "Alice"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).NotTo(BeZero())
			Expect(u.Role).To(Equal(auth.RoleUnassigned))
			Expect(u.Verified).To(BeFalse())
			Expect(u.Status).To(Equal(StatusActive))
		})

		It("is idempotent: re-registering returns the record unchanged", func() {
			first, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com", Name: "Alice"})
			Expect(err).NotTo(HaveOccurred())

			// Promote and verify out-of-band, as Admin and HR would
			Expect(repo.SetRole(ctx, first.ID, auth.RoleHR)).To(Succeed())
			Expect(repo.SetVerified(ctx, first.ID, true)).To(Succeed())

			again, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com", Name: "Someone Else"})
			Expect(err).NotTo(HaveOccurred())
			Expect(again.ID).To(Equal(first.ID))
			Expect(again.Name).To(Equal("Alice"))
			Expect(again.Role).To(Equal(auth.RoleHR))
			Expect(again.Verified).To(BeTrue())
		})

		It("refuses a blocked email", func() {
			blocklist.blocked["mallory@example.com"] = true

			_, err := service.Register(ctx, RegisterDTO{Email: "mallory@example.com"})
			Expect(err).To(MatchError(internal.ErrEmailBlocked))
		})

		It("rejects an invalid email", func() {
			_, err := service.Register(ctx, RegisterDTO{Email: "not-an-email"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("fails closed when the block list is unavailable", func() {
			blocklist.err = errors.New("connection refused")

			_, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com"})
			Expect(err).To(HaveOccurred())
			Expect(repo.byEmail).To(BeEmpty())
		})

		It("keeps serving a terminated user's record by default", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "fired@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.SetStatus(ctx, u.ID, StatusFired)).To(Succeed())

			again, err := service.Register(ctx, RegisterDTO{Email: "fired@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Status).To(Equal(StatusFired))
		})

		It("refuses a terminated user when reject_fired is on", func() {
			service = NewService(repo, blocklist, true, slog.Default())

			u, err := service.Register(ctx, RegisterDTO{Email: "fired@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.SetStatus(ctx, u.ID, StatusFired)).To(Succeed())

			_, err = service.Register(ctx, RegisterDTO{Email: "fired@example.com"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUserTerminated))
		})
	})

	Describe("ResolveRole", func() {
		It("maps a stored user onto a subject", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "hr@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.SetRole(ctx, u.ID, auth.RoleHR)).To(Succeed())

			subject, err := service.ResolveRole(ctx, "hr@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(subject.Role).To(Equal(auth.RoleHR))
			Expect(subject.Terminated).To(BeFalse())
		})

		It("reports termination on the subject", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "fired@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.SetStatus(ctx, u.ID, StatusFired)).To(Succeed())

			subject, err := service.ResolveRole(ctx, "fired@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(subject.Terminated).To(BeTrue())
		})

		It("translates a missing record into the auth sentinel", func() {
			_, err := service.ResolveRole(ctx, "ghost@example.com")
			Expect(err).To(MatchError(auth.ErrSubjectNotFound))
		})
	})

	Describe("SetRole", func() {
		It("accepts every defined role", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com"})
			Expect(err).NotTo(HaveOccurred())

			for _, role := range []string{"Employee", "HR", "Admin", "Unassigned"} {
				Expect(service.SetRole(ctx, u.ID, RoleDTO{Role: role})).To(Succeed())
				Expect(repo.byID[u.ID].Role).To(Equal(auth.Role(role)))
			}
		})

		It("rejects an unknown role", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com"})
			Expect(err).NotTo(HaveOccurred())

			err = service.SetRole(ctx, u.ID, RoleDTO{Role: "Superuser"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("reports a missing user", func() {
			err := service.SetRole(ctx, 9999, RoleDTO{Role: "HR"})
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("SetStatus", func() {
		It("fires and reinstates without deleting the record", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.SetStatus(ctx, u.ID, StatusDTO{Status: "Fired"})).To(Succeed())
			Expect(repo.byID[u.ID].IsTerminated()).To(BeTrue())

			Expect(service.SetStatus(ctx, u.ID, StatusDTO{Status: "Active"})).To(Succeed())
			Expect(repo.byID[u.ID].IsTerminated()).To(BeFalse())
		})

		It("rejects an unknown status", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com"})
			Expect(err).NotTo(HaveOccurred())

			err = service.SetStatus(ctx, u.ID, StatusDTO{Status: "Suspended"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})
	})

	Describe("SetSalary", func() {
		It("rejects a non-positive salary", func() {
			u, err := service.Register(ctx, RegisterDTO{Email: "alice@example.com"})
			Expect(err).NotTo(HaveOccurred())

			err = service.SetSalary(ctx, u.ID, SalaryDTO{Salary: 0})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListVerified", func() {
		It("filters to verified users only when asked", func() {
			a, _ := service.Register(ctx, RegisterDTO{Email: "a@example.com"})
			_, err := service.Register(ctx, RegisterDTO{Email: "b@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.SetVerified(ctx, a.ID, true)).To(Succeed())

			verified, err := service.ListVerified(ctx, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(verified).To(HaveLen(1))
			Expect(verified[0].Email).To(Equal("a@example.com"))

			all, err := service.ListVerified(ctx, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})
	})
})
