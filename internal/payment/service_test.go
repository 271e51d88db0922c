package payment

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/flowhr/flowhr/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPayment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment Module Suite")
}

type mockRepository struct {
	payments []*Payment
	err      error

	lastOffset int
	lastLimit  int
}

func (m *mockRepository) Create(_ context.Context, p *Payment) error {
	if m.err != nil {
		return m.err
	}
	p.ID = int64(len(m.payments) + 1)
	m.payments = append(m.payments, p)
	return nil
}

func (m *mockRepository) ListByEmail(_ context.Context, email string, offset, limit int) ([]*Payment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastOffset = offset
	m.lastLimit = limit
	var out []*Payment
	for _, p := range m.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (m *mockRepository) ListAllByEmail(_ context.Context, email string) ([]*Payment, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*Payment
	for _, p := range m.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) CountByEmail(_ context.Context, email string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var count int64
	for _, p := range m.payments {
		if p.Email == email {
			count++
		}
	}
	return count, nil
}

type mockGateway struct {
	clientSecret string
	err          error
	lastAmount   int64
	calls        int
}

func (m *mockGateway) CreateIntent(_ context.Context, amountCents int64) (string, error) {
	m.calls++
	m.lastAmount = amountCents
	if m.err != nil {
		return "", m.err
	}
	return m.clientSecret, nil
}

var _ = Describe("Payment Service", func() {
	var (
		repo    *mockRepository
		gateway *mockGateway
		service *Service
		ctx     = context.Background()
	)

	BeforeEach(func() {
		repo = &mockRepository{}
		gateway = &mockGateway{clientSecret: "pi_123_secret_456"}
		service = NewService(repo, gateway, slog.Default())
	})

	Describe("CreateIntent", func() {
		It("converts the salary to cents and returns the client secret", func() {
			secret, err := service.CreateIntent(ctx, IntentDTO{Salary: 420.50})
			Expect(err).NotTo(HaveOccurred())
			Expect(secret).To(Equal("pi_123_secret_456"))
			Expect(gateway.lastAmount).To(Equal(int64(42050)))
		})

		It("rejects a non-positive salary without calling the gateway", func() {
			_, err := service.CreateIntent(ctx, IntentDTO{Salary: 0})
			Expect(err).To(HaveOccurred())
			Expect(gateway.calls).To(BeZero())
		})

		It("wraps gateway failures as external errors", func() {
			gateway.err = errors.New("processor down")

			_, err := service.CreateIntent(ctx, IntentDTO{Salary: 100})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeExternal))
		})
	})

	Describe("Record", func() {
		It("stores the payment with the supplied transaction id", func() {
			p, err := service.Record(ctx, RecordDTO{
				Email:         "alice@example.com",
				Month:         "March",
				Year:          2025,
				Amount:        420000,
				TransactionID: "pi_existing",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.TransactionID).To(Equal("pi_existing"))
		})

		It("generates a transaction id when none is supplied", func() {
			p, err := service.Record(ctx, RecordDTO{
				Email:  "alice@example.com",
				Month:  "March",
				Year:   2025,
				Amount: 420000,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.TransactionID).NotTo(BeEmpty())

			second, err := service.Record(ctx, RecordDTO{
				Email:  "alice@example.com",
				Month:  "April",
				Year:   2025,
				Amount: 420000,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.TransactionID).NotTo(Equal(p.TransactionID))
		})
	})

	Describe("History", func() {
		BeforeEach(func() {
			for _, month := range []string{"January", "February", "March", "April", "May", "June", "July"} {
				_, err := service.Record(ctx, RecordDTO{
					Email:  "alice@example.com",
					Month:  month,
					Year:   2025,
					Amount: 420000,
				})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("defaults to the first page of five", func() {
			page, err := service.History(ctx, "alice@example.com", 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(5))
			Expect(repo.lastOffset).To(Equal(0))
			Expect(repo.lastLimit).To(Equal(5))
		})

		It("computes the offset from the page number", func() {
			page, err := service.History(ctx, "alice@example.com", 2, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(2))
			Expect(repo.lastOffset).To(Equal(5))
		})

		It("caps oversized page requests", func() {
			_, err := service.History(ctx, "alice@example.com", 1, 5000)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(5))
		})
	})

	Describe("Count", func() {
		It("counts only the given email's payments", func() {
			_, err := service.Record(ctx, RecordDTO{Email: "alice@example.com", Month: "March", Year: 2025, Amount: 1})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Record(ctx, RecordDTO{Email: "bob@example.com", Month: "March", Year: 2025, Amount: 1})
			Expect(err).NotTo(HaveOccurred())

			count, err := service.Count(ctx, "alice@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})
})
