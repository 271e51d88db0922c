package payment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/transport"
	"github.com/flowhr/flowhr/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateIntent(ctx context.Context, dto IntentDTO) (string, error)
	Record(ctx context.Context, dto RecordDTO) (*Payment, error)
	History(ctx context.Context, email string, page, size int) ([]*Payment, error)
	Count(ctx context.Context, email string) (int64, error)
	DetailsByEmail(ctx context.Context, email string) ([]*Payment, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// CreateIntent handles POST /create-payment-intent behind the HR guard.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var dto IntentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	clientSecret, err := h.Service.CreateIntent(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// Record handles POST /payments behind the HR guard.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	p, err := h.Service.Record(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

// History handles GET /payments?page=&size=&email=.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	email := r.URL.Query().Get("email")

	payments, err := h.Service.History(r.Context(), email, page, size)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, payments)
}

// Count handles GET /payments-count?filter=<email>.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("filter")

	count, err := h.Service.Count(r.Context(), email)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// Details handles GET /payment-details/{email}.
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	payments, err := h.Service.DetailsByEmail(r.Context(), email)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, payments)
}
