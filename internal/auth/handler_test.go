package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockBlockChecker struct {
	blocked map[string]bool
	err     error
	calls   int
}

func (m *mockBlockChecker) IsBlocked(_ context.Context, email string) (bool, error) {
	m.calls++
	if m.err != nil {
		return false, m.err
	}
	return m.blocked[email], nil
}

var _ = Describe("Session Handler", func() {
	var (
		service   *Service
		blocklist *mockBlockChecker
		handler   *Handler
	)

	BeforeEach(func() {
		service = NewService("test-secret-key-that-is-long-enough!!", 365*24*time.Hour)
		blocklist = &mockBlockChecker{blocked: map[string]bool{}}
		handler = NewHandler(service, blocklist, false)
	})

	issueRequest := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/jwt", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.IssueToken(rec, req)
		return rec
	}

	Describe("IssueToken", func() {
		It("sets a session cookie for a valid claim", func() {
			rec := issueRequest(`{"email":"alice@example.com","name":"Alice"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal(CookieName))
			Expect(cookies[0].HttpOnly).To(BeTrue())

			claims, err := service.Verify(cookies[0].Value)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Email).To(Equal("alice@example.com"))
		})

		It("refuses a blocked email before minting a token", func() {
			blocklist.blocked["mallory@example.com"] = true

			rec := issueRequest(`{"email":"mallory@example.com"}`)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(rec.Result().Cookies()).To(BeEmpty())
		})

		It("rejects a missing email", func() {
			rec := issueRequest(`{"name":"NoEmail"}`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects malformed JSON", func() {
			rec := issueRequest(`{"email":`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("fails closed when the block list is unavailable", func() {
			blocklist.err = context.DeadlineExceeded

			rec := issueRequest(`{"email":"alice@example.com"}`)
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Result().Cookies()).To(BeEmpty())
		})
	})

	Describe("Logout", func() {
		It("clears the session cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/logout", nil)
			rec := httptest.NewRecorder()
			handler.Logout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Value).To(BeEmpty())
			Expect(cookies[0].MaxAge).To(BeNumerically("<=", 0))
		})
	})

	Describe("SessionMiddleware", func() {
		var nextCalled bool

		next := func() http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				claims, ok := ClaimsFromContext(r.Context())
				Expect(ok).To(BeTrue())
				Expect(claims.Email).To(Equal("alice@example.com"))
				w.WriteHeader(http.StatusOK)
			})
		}

		BeforeEach(func() {
			nextCalled = false
		})

		It("admits a valid cookie and binds claims into context", func() {
			token, err := service.Issue(Claims{Email: "alice@example.com"})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(next()).ServeHTTP(rec, req)
			Expect(nextCalled).To(BeTrue())
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("denies a request without a cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(next()).ServeHTTP(rec, req)
			Expect(nextCalled).To(BeFalse())
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("denies a tampered cookie with the same response as a missing one", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(next()).ServeHTTP(rec, req)
			Expect(nextCalled).To(BeFalse())
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))

			missing := httptest.NewRequest(http.MethodGet, "/", nil)
			missingRec := httptest.NewRecorder()
			handler.SessionMiddleware(next()).ServeHTTP(missingRec, missing)

			Expect(rec.Body.String()).To(Equal(missingRec.Body.String()))
		})

		It("denies an expired cookie", func() {
			issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			service.now = func() time.Time { return issued }
			token, err := service.Issue(Claims{Email: "alice@example.com"})
			Expect(err).NotTo(HaveOccurred())
			service.now = func() time.Time { return issued.Add(366 * 24 * time.Hour) }

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(next()).ServeHTTP(rec, req)
			Expect(nextCalled).To(BeFalse())
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("reports the canonical denial message", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(next()).ServeHTTP(rec, req)

			var body map[string]map[string]any
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["error"]["message"]).To(Equal("Unauthorized Access"))
		})
	})
})
