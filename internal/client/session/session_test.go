package session

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
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB);`)
	require.NoError(t, err)
	return NewStore(metadata.NewSQLiteRepository(db))
}

func TestStore_SaveLoadClear(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Save(ctx, "cookie-value"))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cookie-value", got)

	require.NoError(t, s.Clear(ctx))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestLikelyExpired(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"expired jwt", signedToken(t, now.Add(-time.Hour)), true},
		{"valid jwt", signedToken(t, now.Add(time.Hour)), false},
		{"opaque cookie", "f00f00deadbeef", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LikelyExpired(tc.value, now))
		})
	}
}

func TestLikelyExpired_NoExpClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user"})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	assert.False(t, LikelyExpired(s, time.Now()))
}
