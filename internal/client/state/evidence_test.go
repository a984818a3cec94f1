package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

func ev(id int64, name string) models.Evidence {
	return models.Evidence{ID: id, Control: 1, Name: name, Status: models.EvidencePending}
}

func TestEvidenceStore_LoadThenInsert_GrowsWithoutAlteringExisting(t *testing.T) {
	s := NewEvidenceStore()
	s.Load([]models.Evidence{ev(1, "a.pdf"), ev(2, "b.pdf")})

	s.Insert(ev(3, "c.pdf"))
	s.Insert(ev(4, "d.pdf"))

	assert.Equal(t, 4, s.Len())

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a.pdf", got.Name)
	got, ok = s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "b.pdf", got.Name)
}

func TestEvidenceStore_Load_IsFullReplacement(t *testing.T) {
	s := NewEvidenceStore()
	s.Load([]models.Evidence{ev(1, "a.pdf"), ev(2, "b.pdf")})

	s.Load([]models.Evidence{ev(2, "b.pdf")})

	assert.Equal(t, 1, s.Len())
	_, ok := s.Get(1)
	assert.False(t, ok, "stale record not present server-side must be dropped")
}

func TestEvidenceStore_Insert_ReconcilesOnIDCollision(t *testing.T) {
	s := NewEvidenceStore()
	s.Load([]models.Evidence{ev(5, "old.pdf")})

	updated := ev(5, "new.pdf")
	updated.Status = models.EvidenceApproved
	s.Insert(updated)

	assert.Equal(t, 1, s.Len(), "collision must not duplicate")
	got, ok := s.Get(5)
	require.True(t, ok)
	assert.Equal(t, "new.pdf", got.Name)
	assert.Equal(t, models.EvidenceApproved, got.Status)
}

func TestEvidenceStore_RemoveMany_IsIdempotent(t *testing.T) {
	s := NewEvidenceStore()
	s.Load([]models.Evidence{ev(1, "a"), ev(2, "b"), ev(3, "c")})

	s.RemoveMany([]int64{1, 3})
	first := s.All()

	s.RemoveMany([]int64{1, 3})
	second := s.All()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get(2)
	assert.True(t, ok)
}

func TestEvidenceStore_PreservesInsertionOrder(t *testing.T) {
	s := NewEvidenceStore()
	s.Load([]models.Evidence{ev(10, "x"), ev(2, "y")})
	s.Insert(ev(7, "z"))

	var ids []int64
	for _, e := range s.All() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{10, 2, 7}, ids)
}

func TestEvidenceStore_Names(t *testing.T) {
	s := NewEvidenceStore()
	s.Load([]models.Evidence{ev(1, "b.pdf"), ev(2, "a.pdf")})

	assert.Equal(t, []string{"a.pdf", "b.pdf"}, s.Names([]int64{1, 2, 99}))
}
