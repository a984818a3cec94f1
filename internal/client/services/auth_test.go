package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/haktiv/evidencekeeper/internal/client/repositories/metadata"
	"github.com/haktiv/evidencekeeper/internal/client/session"
)

// sessionClient records SetSession calls on top of stubClient.
type sessionClient struct {
	stubClient
	installed []string
	logoutErr error
}

func (c *sessionClient) SetSession(v string) { c.installed = append(c.installed, v) }

func (c *sessionClient) Logout(ctx context.Context) (string, error) {
	if c.logoutErr != nil {
		return "", c.logoutErr
	}
	return "https://sso/logout", nil
}

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB);`)
	require.NoError(t, err)
	return session.NewStore(metadata.NewSQLiteRepository(db))
}

func TestVerify_ReturnsProfile(t *testing.T) {
	a := NewAuthService(&sessionClient{}, nil)
	profile, err := a.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u@example.com", profile.Email)
}

func TestRestore_NoStoredCookie(t *testing.T) {
	client := &sessionClient{}
	a := NewAuthService(client, newSessionStore(t))

	ok, err := a.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, client.installed)
}

func TestRestore_InstallsStoredCookie(t *testing.T) {
	client := &sessionClient{}
	store := newSessionStore(t)
	a := NewAuthService(client, store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "opaque-cookie"))

	ok, err := a.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"opaque-cookie"}, client.installed)
}

func TestRestore_SkipsLocallyExpiredJWT(t *testing.T) {
	client := &sessionClient{}
	store := newSessionStore(t)
	a := NewAuthService(client, store)
	ctx := context.Background()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, signed))

	ok, err := a.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "known-expired cookie is not worth a round trip")
	assert.Empty(t, client.installed)
}

func TestSaveSession_InstallsAndPersists(t *testing.T) {
	client := &sessionClient{}
	store := newSessionStore(t)
	a := NewAuthService(client, store)
	ctx := context.Background()

	require.NoError(t, a.SaveSession(ctx, "fresh"))
	assert.Equal(t, []string{"fresh"}, client.installed)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh", saved)
}

func TestLogout_ClearsStoredCookieEvenOnBackendFailure(t *testing.T) {
	client := &sessionClient{logoutErr: assert.AnError}
	store := newSessionStore(t)
	a := NewAuthService(client, store)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "cookie"))

	_, err := a.Logout(ctx)
	require.Error(t, err)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved, "local cookie dropped regardless")
}

func TestLogout_ReturnsSSOURL(t *testing.T) {
	a := NewAuthService(&sessionClient{}, nil)
	u, err := a.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://sso/logout", u)
}
