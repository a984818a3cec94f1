// Package services contains the application services for the evidencekeeper
// client: the session guard and the data synchronization controller.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/haktiv/evidencekeeper/internal/client/api"
	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/client/session"
)

// AuthService gates data loading behind the backend session check.
//
// Contract: one verification per login attempt, no retry. Any failure, HTTP
// or network, is treated as unauthenticated; the caller sends the user to
// the external SSO entry point.
type AuthService interface {
	// Verify calls the identity endpoint and returns the profile on success.
	Verify(ctx context.Context) (*models.UserProfile, error)

	// Restore installs the persisted session cookie, if any. Returns false
	// when no cookie is stored or the stored one is locally known-expired.
	Restore(ctx context.Context) (bool, error)

	// SaveSession installs and persists a freshly pasted session cookie.
	SaveSession(ctx context.Context, cookie string) error

	// Logout ends the backend session, clears the stored cookie, and
	// returns the SSO logout URL for the user to visit.
	Logout(ctx context.Context) (string, error)

	// LoginURL is the browser entry point for the SSO redirect flow.
	LoginURL() string

	// Ping checks backend reachability.
	Ping(ctx context.Context) error
}

type authService struct {
	client   api.Client
	sessions *session.Store
	now      func() time.Time
}

// NewAuthService binds the guard to the API client and the local session
// store. sessions may be nil when the client runs without a cache DB.
func NewAuthService(client api.Client, sessions *session.Store) AuthService {
	return &authService{client: client, sessions: sessions, now: time.Now}
}

func (a *authService) Verify(ctx context.Context) (*models.UserProfile, error) {
	return a.client.VerifySession(ctx)
}

func (a *authService) Restore(ctx context.Context) (bool, error) {
	if a.sessions == nil {
		return false, nil
	}
	cookie, err := a.sessions.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("loading stored session: %w", err)
	}
	if cookie == "" || session.LikelyExpired(cookie, a.now()) {
		return false, nil
	}
	a.client.SetSession(cookie)
	return true, nil
}

func (a *authService) SaveSession(ctx context.Context, cookie string) error {
	a.client.SetSession(cookie)
	if a.sessions == nil {
		return nil
	}
	if err := a.sessions.Save(ctx, cookie); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) (string, error) {
	logoutURL, err := a.client.Logout(ctx)
	if a.sessions != nil {
		// best effort: a failed backend logout still drops the local cookie
		_ = a.sessions.Clear(ctx)
	}
	if err != nil {
		return "", err
	}
	return logoutURL, nil
}

func (a *authService) LoginURL() string {
	return a.client.LoginURL()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
