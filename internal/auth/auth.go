package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie carrying the session credential.
const CookieName = "token"

// Role is the closed set of roles a user record can hold. Guards match
// exactly: the model is a flat capability set, not a privilege lattice,
// so Admin does not imply HR or Employee.
type Role string

const (
	RoleUnassigned Role = "Unassigned"
	RoleEmployee   Role = "Employee"
	RoleHR         Role = "HR"
	RoleAdmin      Role = "Admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUnassigned, RoleEmployee, RoleHR, RoleAdmin:
		return true
	default:
		return false
	}
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Claims is the identity claim embedded in a session credential. The role
// deliberately does not live here: it is resolved from the user store on
// every guarded request so role edits take effect without re-login.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies session credentials.
type TokenCodec interface {
	Issue(claims Claims) (string, error)
	Verify(token string) (*Claims, error)
}

// Subject is a user's live authorization state as read from the store.
type Subject struct {
	Email      string
	Role       Role
	Terminated bool
}

// RoleResolver looks up the current role of an identity at request time.
// Implementations must hit the backing store on every call; results are
// never cached across requests.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (*Subject, error)
}

// BlockChecker reports whether an email is on the deny list.
type BlockChecker interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
}

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrUnknownRole     = errors.New("unknown role")
	ErrSubjectNotFound = errors.New("subject not found")
)

type ctxKey string

const contextClaimsKey ctxKey = "session_claims"

// ClaimsFromContext returns the verified session claims bound by the
// session middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextClaimsKey).(*Claims)
	return c, ok
}

func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextClaimsKey, claims)
}

// ExpiresIn reports the remaining validity of the claims at t.
func (c *Claims) ExpiresIn(t time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(t)
}
