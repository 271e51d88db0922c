package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/transport"
	"github.com/flowhr/flowhr/pkg/logger"
)

// CookieBaker builds the transport cookies for session credentials.
type CookieBaker interface {
	SessionCookie(token string, production bool) *http.Cookie
	ClearedSessionCookie(production bool) *http.Cookie
}

type Handler struct {
	*transport.BaseHandler
	Codec      TokenCodec
	Cookies    CookieBaker
	Blocklist  BlockChecker
	Production bool
}

func NewHandler(svc *Service, blocklist BlockChecker, production bool) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Codec:       svc,
		Cookies:     svc,
		Blocklist:   blocklist,
		Production:  production,
	}
}

// IssueToken handles POST /jwt. It signs a credential for the supplied
// identity claim and sets it as an HTTP-only cookie. Blocked emails are
// refused before any token is minted.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var dto TokenRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleError(w, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidEmail))
		return
	}

	blocked, err := h.Blocklist.IsBlocked(r.Context(), dto.Email)
	if err != nil {
		h.Logger.Error("block list lookup failed", "email", dto.Email, "error", err)
		h.HandleError(w, internal.NewInternalError("internal server error", err))
		return
	}
	if blocked {
		h.Logger.Warn("token refused for blocked email", "email", dto.Email)
		h.HandleError(w, internal.ErrEmailBlocked)
		return
	}

	token, err := h.Codec.Issue(Claims{Email: dto.Email, Name: dto.Name})
	if err != nil {
		h.Logger.Error("token issuance failed", "error", err)
		h.HandleError(w, internal.NewInternalError("internal server error", err))
		return
	}

	http.SetCookie(w, h.Cookies.SessionCookie(token, h.Production))
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout handles GET /logout by clearing the session cookie. The server
// holds no session state, so there is nothing else to revoke.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.Cookies.ClearedSessionCookie(h.Production))
	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SessionMiddleware verifies the session cookie and binds the decoded
// claims into the request context. It is purely a credential gate: the
// user store is never touched here. A missing cookie is rejected before
// any decode is attempted, and every failure produces the same response.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			h.HandleError(w, internal.ErrUnauthorizedAccess)
			return
		}

		claims, err := h.Codec.Verify(cookie.Value)
		if err != nil {
			h.Logger.Warn("session token rejected", "error", err)
			h.HandleError(w, internal.ErrUnauthorizedAccess)
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
