package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

func TestOpen_MigratesAndRoundTripsSnapshot(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	snap := Snapshot{
		Controls: []models.Control{{ID: 1, Name: "Access Control", Status: models.ControlImplemented}},
		Evidence: []models.Evidence{{ID: 5, Control: 1, Name: "f.pdf", Status: models.EvidencePending}},
		Checks:   []models.ComplianceCheck{{ID: 1, EvidenceID: 5, Status: models.CheckProcessing}},
	}
	require.NoError(t, c.SaveSnapshot(ctx, snap))

	got, err := c.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Controls, got.Controls)
	assert.Equal(t, snap.Evidence, got.Evidence)
	assert.Equal(t, snap.Checks, got.Checks)
}

func TestMetadata_PersistsSessionValue(t *testing.T) {
	ctx := context.Background()
	c, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Metadata.Set(ctx, "session_cookie", []byte("abc")))
	got, err := c.Metadata.Get(ctx, "session_cookie")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}
