package user

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
	Register(ctx context.Context, dto RegisterDTO) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ListVerified(ctx context.Context, verifiedOnly bool) ([]*User, error)
	UpdateProfile(ctx context.Context, id int64, dto ProfileUpdateDTO) error
	SetVerified(ctx context.Context, id int64, dto VerifiedDTO) error
	SetRole(ctx context.Context, id int64, dto RoleDTO) error
	SetStatus(ctx context.Context, id int64, dto StatusDTO) error
	SetSalary(ctx context.Context, id int64, dto SalaryDTO) error
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

// Register handles PUT /user. Registering twice is a no-op that returns
// the stored record, protected fields included.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	u, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// List handles GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// ListVerified handles GET /users-verified with an optional
// ?verified=true filter.
func (h *Handler) ListVerified(w http.ResponseWriter, r *http.Request) {
	verifiedOnly := r.URL.Query().Get("verified") == "true"
	users, err := h.Service.ListVerified(r.Context(), verifiedOnly)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// GetByEmail backs both GET /users/{email} and GET /users-details/{email}.
func (h *Handler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	u, err := h.Service.GetByEmail(r.Context(), email)
	if err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// UpdateDetails handles PUT /update-details/{id}.
func (h *Handler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto ProfileUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.Service.UpdateProfile(r.Context(), id, dto); err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetVerified handles PUT /user-verified-status/{id} behind the HR guard.
func (h *Handler) SetVerified(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto VerifiedDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.Service.SetVerified(r.Context(), id, dto); err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetRole handles PUT /user-role/{id} behind the Admin guard.
func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto RoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.Service.SetRole(r.Context(), id, dto); err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetStatus handles PUT /user-status/{id} behind the Admin guard.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto StatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.Service.SetStatus(r.Context(), id, dto); err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetSalary handles PUT /user-salary/{id} behind the Admin guard.
func (h *Handler) SetSalary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto SalaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.Service.SetSalary(r.Context(), id, dto); err != nil {
		h.HandleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleError(w, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed))
		return 0, false
	}
	return id, true
}
