package worksheet

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/transport"
	"github.com/flowhr/flowhr/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Submit handles PUT /work-sheet behind the Employee guard.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	entry, err := h.Service.Submit(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}

// ListByEmail handles GET /work-sheet/{email}.
func (h *Handler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	entries, err := h.Service.ListByEmail(r.Context(), email)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entries)
}

// ListAll handles GET /all-works?name=&month=.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Name:  r.URL.Query().Get("name"),
		Month: r.URL.Query().Get("month"),
	}

	entries, err := h.Service.ListAll(r.Context(), filter)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entries)
}
