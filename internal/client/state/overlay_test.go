package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

func TestOverlay_AbsentLookupsReportNotOK(t *testing.T) {
	o := NewComplianceOverlay()

	_, ok := o.StatusOf(42)
	assert.False(t, ok)
	_, ok = o.DetailsOf(42)
	assert.False(t, ok)

	o.Replace([]models.ComplianceCheck{{EvidenceID: 1, Status: models.CheckApproved}})
	_, ok = o.StatusOf(42)
	assert.False(t, ok, "absence must survive refreshes")
}

func TestOverlay_Replace_RebuildsMapping(t *testing.T) {
	o := NewComplianceOverlay()
	o.Replace([]models.ComplianceCheck{
		{EvidenceID: 5, Status: models.CheckProcessing},
		{EvidenceID: 6, Status: models.CheckRejected, RejectionReason: "blurry scan"},
	})

	st, ok := o.StatusOf(5)
	require.True(t, ok)
	assert.Equal(t, models.CheckProcessing, st)

	details, ok := o.DetailsOf(6)
	require.True(t, ok)
	assert.Equal(t, "blurry scan", details.RejectionReason)

	// a later refresh drops entries the backend no longer reports
	o.Replace([]models.ComplianceCheck{{EvidenceID: 6, Status: models.CheckApproved}})
	_, ok = o.StatusOf(5)
	assert.False(t, ok)
	st, _ = o.StatusOf(6)
	assert.Equal(t, models.CheckApproved, st)
}

func TestOverlay_DuplicateEvidenceIDs_LastWins(t *testing.T) {
	o := NewComplianceOverlay()
	o.Replace([]models.ComplianceCheck{
		{EvidenceID: 5, Status: models.CheckError},
		{EvidenceID: 5, Status: models.CheckApproved},
	})

	st, ok := o.StatusOf(5)
	require.True(t, ok)
	assert.Equal(t, models.CheckApproved, st)
	assert.Equal(t, 1, o.Len())
}

func TestOverlay_AnyProcessing(t *testing.T) {
	o := NewComplianceOverlay()
	assert.False(t, o.AnyProcessing())

	o.Replace([]models.ComplianceCheck{
		{EvidenceID: 1, Status: models.CheckApproved},
		{EvidenceID: 2, Status: models.CheckProcessing},
	})
	assert.True(t, o.AnyProcessing())

	o.Replace([]models.ComplianceCheck{{EvidenceID: 2, Status: models.CheckRejected}})
	assert.False(t, o.AnyProcessing())
}
