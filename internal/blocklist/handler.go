package blocklist

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

// Block handles PUT /block-user. The route sits behind the Admin guard:
// blocking is an administrative action.
func (h *Handler) Block(w http.ResponseWriter, r *http.Request) {
	var dto BlockDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	entry, err := h.Service.Block(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

// Check handles GET /block-user/{email}.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	entry, err := h.Service.Lookup(r.Context(), email)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"blocked": entry != nil,
		"entry":   entry,
	})
}
