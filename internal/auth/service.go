package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service signs and verifies session credentials. It is stateless: the
// server keeps no record of issued tokens and there is no revocation
// list, so a credential stays valid until its expiry regardless of
// logout calls.
type Service struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewService(secret string, validity time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
	}
}

// Issue signs a credential for the supplied identity claim. The claim is
// taken on trust; authenticating the principal happens out-of-band at the
// identity provider, before this subsystem is reached.
func (s *Service) Issue(claims Claims) (string, error) {
	issuedAt := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.Email,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.validity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Malformed and tampered tokens collapse into ErrInvalidToken; callers at
// the HTTP boundary must not expose which check failed.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SessionCookie wraps a signed credential for transport. Cross-site
// frontends need SameSite=None, which browsers only accept over HTTPS.
func (s *Service) SessionCookie(token string, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(s.validity.Seconds()),
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// ClearedSessionCookie asks the client to discard its credential. This is
// the whole logout mechanism; the token itself stays valid server-side.
func (s *Service) ClearedSessionCookie(production bool) *http.Cookie {
	cookie := s.SessionCookie("", production)
	cookie.MaxAge = 0
	cookie.Expires = time.Unix(0, 0)
	return cookie
}
