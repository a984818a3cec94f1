package checks

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE compliance_checks (
  id INTEGER PRIMARY KEY,
  evidence_id INTEGER NOT NULL,
  status TEXT NOT NULL,
  ai_analysis BLOB,
  rejection_reason TEXT NOT NULL DEFAULT '',
  recommendations TEXT NOT NULL DEFAULT ''
);`)
	require.NoError(t, err)
	return db
}

func TestReplaceAll_RoundTripWithAnalysis(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	in := []models.ComplianceCheck{
		{ID: 1, EvidenceID: 5, Status: models.CheckProcessing},
		{
			ID: 2, EvidenceID: 6, Status: models.CheckApproved,
			AIAnalysis: &models.AIAnalysis{
				IsCompliant:      true,
				Confidence:       0.87,
				DetectedElements: []string{"policy header", "signature"},
				Reasoning:        "document matches the control",
			},
			Recommendations: "none",
		},
	}
	require.NoError(t, r.ReplaceAll(ctx, in))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Nil(t, got[0].AIAnalysis)
	require.NotNil(t, got[1].AIAnalysis)
	assert.InDelta(t, 0.87, got[1].AIAnalysis.Confidence, 1e-9)
	assert.Equal(t, []string{"policy header", "signature"}, got[1].AIAnalysis.DetectedElements)
}
