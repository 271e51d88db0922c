package message

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/transport"
	"github.com/flowhr/flowhr/pkg/logger"
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

// Submit handles PUT /messages; the endpoint is public so the landing
// page contact form works without a session.
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

// ListAll handles GET /messages.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entries)
}
