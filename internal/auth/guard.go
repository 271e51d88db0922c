package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/transport"
)

// Guard builds per-role authorization middleware. Each check resolves the
// caller's role from the store on every request, so an Admin's role edit
// bites on the affected user's very next request without re-login.
//
// Denials are indistinguishable from the session middleware's: same
// status, same body. Which check failed is logged, never surfaced.
type Guard struct {
	*transport.BaseHandler
	resolver RoleResolver
	logger   *slog.Logger
}

func NewGuard(resolver RoleResolver, logger *slog.Logger) *Guard {
	return &Guard{
		BaseHandler: transport.NewBaseHandler(logger),
		resolver:    resolver,
		logger:      logger,
	}
}

// Require returns middleware admitting only callers whose live role equals
// role exactly. Roles are flat capabilities: Admin does not pass an HR or
// Employee check.
func (g *Guard) Require(role Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims == nil {
				g.logger.Warn("guard check without session claims", "required_role", role)
				g.HandleError(w, internal.ErrUnauthorizedAccess)
				return
			}

			subject, err := g.resolver.ResolveRole(r.Context(), claims.Email)
			if err != nil {
				// A store failure denies access; never fail open. NotFound
				// folds into the same denial to avoid identity enumeration.
				if errors.Is(err, ErrSubjectNotFound) {
					g.logger.Warn("guard denied: no user record", "email", claims.Email, "required_role", role)
				} else {
					g.logger.Error("role resolution failed", "email", claims.Email, "error", err)
				}
				g.HandleError(w, internal.ErrUnauthorizedAccess)
				return
			}

			if subject.Terminated {
				g.logger.Warn("guard denied: terminated user", "email", claims.Email, "required_role", role)
				g.HandleError(w, internal.ErrUnauthorizedAccess)
				return
			}

			if subject.Role != role {
				g.logger.Warn("guard denied: role mismatch",
					"email", claims.Email,
					"required_role", role,
					"actual_role", subject.Role)
				g.HandleError(w, internal.ErrUnauthorizedAccess)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) RequireAdmin() func(http.Handler) http.Handler {
	return g.Require(RoleAdmin)
}

func (g *Guard) RequireHR() func(http.Handler) http.Handler {
	return g.Require(RoleHR)
}

func (g *Guard) RequireEmployee() func(http.Handler) http.Handler {
	return g.Require(RoleEmployee)
}
