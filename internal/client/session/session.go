// Package session persists the backend session cookie between CLI runs and
// offers a cheap local expiry preflight for JWT-shaped cookies.
//
// The cookie itself is obtained out-of-band: the user completes the SSO
// redirect flow in a browser, lands on the auth-success page, and pastes the
// issued cookie into the client. This package never implements any part of
// the authentication protocol.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/haktiv/evidencekeeper/internal/client/repositories/metadata"
)

const cookieKey = "session_cookie"

// Store keeps the session cookie in the client's metadata table.
type Store struct {
	meta metadata.Repository
}

func NewStore(meta metadata.Repository) *Store {
	return &Store{meta: meta}
}

func (s *Store) Save(ctx context.Context, value string) error {
	return s.meta.Set(ctx, cookieKey, []byte(value))
}

// Load returns the persisted cookie, or "" when none is stored.
func (s *Store) Load(ctx context.Context) (string, error) {
	b, err := s.meta.Get(ctx, cookieKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.meta.Delete(ctx, cookieKey)
}

// LikelyExpired reports whether value parses as a JWT whose exp claim is in
// the past. Opaque (non-JWT) cookies and tokens without exp report false:
// the server-side session check stays authoritative, this only short-cuts
// the obvious case before a round trip.
func LikelyExpired(value string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
