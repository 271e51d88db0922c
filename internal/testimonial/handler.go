package testimonial

import (
	"log/slog"
	"net/http"

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

// ListAll handles GET /testimonials; public, read only.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, testimonials)
}
