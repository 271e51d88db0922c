package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockResolver struct {
	subjects map[string]*Subject
	err      error
	calls    int
}

func (m *mockResolver) ResolveRole(_ context.Context, email string) (*Subject, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	subject, ok := m.subjects[email]
	if !ok {
		return nil, ErrSubjectNotFound
	}
	return subject, nil
}

var _ = Describe("Role Guard", func() {
	var (
		resolver   *mockResolver
		guard      *Guard
		nextCalled bool
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	request := func(mw func(http.Handler) http.Handler, claims *Claims) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if claims != nil {
			req = req.WithContext(ContextWithClaims(req.Context(), claims))
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		nextCalled = false
		resolver = &mockResolver{subjects: map[string]*Subject{
			"admin@example.com":    {Email: "admin@example.com", Role: RoleAdmin},
			"hr@example.com":       {Email: "hr@example.com", Role: RoleHR},
			"employee@example.com": {Email: "employee@example.com", Role: RoleEmployee},
			"fired@example.com":    {Email: "fired@example.com", Role: RoleEmployee, Terminated: true},
		}}
		guard = NewGuard(resolver, slog.Default())
	})

	It("admits a caller whose live role matches", func() {
		rec := request(guard.RequireAdmin(), &Claims{Email: "admin@example.com"})
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(nextCalled).To(BeTrue())
	})

	It("denies without session claims in context", func() {
		rec := request(guard.RequireAdmin(), nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextCalled).To(BeFalse())
		Expect(resolver.calls).To(BeZero())
	})

	It("roles are flat: Admin does not pass an HR check", func() {
		rec := request(guard.RequireHR(), &Claims{Email: "admin@example.com"})
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextCalled).To(BeFalse())
	})

	It("roles are flat: HR does not pass an Employee check", func() {
		rec := request(guard.RequireEmployee(), &Claims{Email: "hr@example.com"})
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("denies a valid credential whose user record is gone", func() {
		rec := request(guard.RequireEmployee(), &Claims{Email: "ghost@example.com"})
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextCalled).To(BeFalse())
	})

	It("fails closed when the store errors", func() {
		resolver.err = errors.New("connection refused")
		rec := request(guard.RequireAdmin(), &Claims{Email: "admin@example.com"})
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextCalled).To(BeFalse())
	})

	It("denies a terminated user even with the right role", func() {
		rec := request(guard.RequireEmployee(), &Claims{Email: "fired@example.com"})
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextCalled).To(BeFalse())
	})

	It("re-reads the role each request, so demotion bites immediately", func() {
		rec := request(guard.RequireAdmin(), &Claims{Email: "admin@example.com"})
		Expect(rec.Code).To(Equal(http.StatusOK))

		// Demote between requests; the same unchanged token now fails.
		resolver.subjects["admin@example.com"].Role = RoleEmployee
		nextCalled = false

		rec = request(guard.RequireAdmin(), &Claims{Email: "admin@example.com"})
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextCalled).To(BeFalse())
		Expect(resolver.calls).To(Equal(2))
	})

	It("produces the same body for every denial reason", func() {
		noClaims := request(guard.RequireAdmin(), nil)
		wrongRole := request(guard.RequireAdmin(), &Claims{Email: "hr@example.com"})
		missing := request(guard.RequireAdmin(), &Claims{Email: "ghost@example.com"})
		fired := request(guard.RequireAdmin(), &Claims{Email: "fired@example.com"})

		Expect(wrongRole.Body.String()).To(Equal(noClaims.Body.String()))
		Expect(missing.Body.String()).To(Equal(noClaims.Body.String()))
		Expect(fired.Body.String()).To(Equal(noClaims.Body.String()))
	})
})
