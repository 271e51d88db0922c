package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/flowhr/flowhr/internal/auth"
	"github.com/flowhr/flowhr/internal/blocklist"
	"github.com/flowhr/flowhr/internal/message"
	"github.com/flowhr/flowhr/internal/payment"
	"github.com/flowhr/flowhr/internal/testimonial"
	"github.com/flowhr/flowhr/internal/transport/middleware"
	"github.com/flowhr/flowhr/internal/transport/swagger"
	"github.com/flowhr/flowhr/internal/user"
	"github.com/flowhr/flowhr/internal/worksheet"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth        *auth.Handler
	Guard       *auth.Guard
	User        *user.Handler
	Blocklist   *blocklist.Handler
	Payment     *payment.Handler
	Worksheet   *worksheet.Handler
	Message     *message.Handler
	Testimonial *testimonial.Handler
}

// RegisterAllRoutes wires the full route table. Guarded routes stack the
// session middleware first, then the role guard, so a missing credential
// and a wrong role produce the same denial.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API routes)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Health routes
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Session routes
	router.Post("/jwt", h.Auth.IssueToken)
	router.Get("/logout", h.Auth.Logout)

	// Public user routes; registration is an idempotent upsert
	router.Put("/user", h.User.Register)
	router.Get("/users", h.User.List)
	router.Get("/users-verified", h.User.ListVerified)
	router.Get("/users/{email}", h.User.GetByEmail)
	router.Get("/users-details/{email}", h.User.GetByEmail)

	// Public read routes
	router.Get("/block-user/{email}", h.Blocklist.Check)
	router.Get("/payments", h.Payment.History)
	router.Get("/payments-count", h.Payment.Count)
	router.Get("/payment-details/{email}", h.Payment.Details)
	router.Get("/work-sheet/{email}", h.Worksheet.ListByEmail)
	router.Get("/all-works", h.Worksheet.ListAll)
	router.Put("/messages", h.Message.Submit)
	router.Get("/messages", h.Message.ListAll)
	router.Get("/testimonials", h.Testimonial.ListAll)

	// Session-only routes
	router.Group(func(sr chi.Router) {
		sr.Use(h.Auth.SessionMiddleware)
		sr.Put("/update-details/{id}", h.User.UpdateDetails)
	})

	// HR routes
	router.Group(func(hr chi.Router) {
		hr.Use(h.Auth.SessionMiddleware)
		hr.Use(h.Guard.RequireHR())
		hr.Put("/user-verified-status/{id}", h.User.SetVerified)
		hr.Post("/create-payment-intent", h.Payment.CreateIntent)
		hr.Post("/payments", h.Payment.Record)
	})

	// Admin routes
	router.Group(func(ar chi.Router) {
		ar.Use(h.Auth.SessionMiddleware)
		ar.Use(h.Guard.RequireAdmin())
		ar.Put("/user-role/{id}", h.User.SetRole)
		ar.Put("/user-status/{id}", h.User.SetStatus)
		ar.Put("/user-salary/{id}", h.User.SetSalary)
		ar.Put("/block-user", h.Blocklist.Block)
	})

	// Employee routes
	router.Group(func(er chi.Router) {
		er.Use(h.Auth.SessionMiddleware)
		er.Use(h.Guard.RequireEmployee())
		er.Put("/work-sheet", h.Worksheet.Submit)
	})
}
