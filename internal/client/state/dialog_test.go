package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDialog_HappyPath(t *testing.T) {
	d := NewDeleteDialog()

	require.True(t, d.Open([]int64{5, 9}, []string{"a.pdf", "b.pdf"}))
	assert.Equal(t, DialogConfirmPending, d.Phase())
	assert.Equal(t, "a.pdf, b.pdf", d.Summary())

	ids, ok := d.Begin()
	require.True(t, ok)
	assert.Equal(t, []int64{5, 9}, ids)
	assert.Equal(t, DialogCommitting, d.Phase())

	d.Succeed()
	assert.Equal(t, DialogIdle, d.Phase())
	assert.Empty(t, d.Summary())
}

func TestDeleteDialog_FailureKeepsDialogOpen(t *testing.T) {
	d := NewDeleteDialog()
	require.True(t, d.Open([]int64{5}, []string{"a.pdf"}))
	_, ok := d.Begin()
	require.True(t, ok)

	d.Fail()

	assert.Equal(t, DialogConfirmPending, d.Phase(), "busy cleared but dialog still open")
	assert.Equal(t, "a.pdf", d.Summary())

	// retry is possible
	ids, ok := d.Begin()
	require.True(t, ok)
	assert.Equal(t, []int64{5}, ids)
}

func TestDeleteDialog_GuardsInvalidTransitions(t *testing.T) {
	d := NewDeleteDialog()

	_, ok := d.Begin()
	assert.False(t, ok, "nothing pending")
	assert.False(t, d.Cancel())

	require.True(t, d.Open([]int64{1}, []string{"x"}))
	assert.False(t, d.Open([]int64{2}, []string{"y"}), "only one pending deletion at a time")

	_, _ = d.Begin()
	assert.False(t, d.Cancel(), "committing cannot be cancelled")
}
