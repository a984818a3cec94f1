package state

import (
	"sync"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

// ComplianceOverlay is a derived projection joining compliance checks onto
// evidence records by evidence id. It is rebuilt wholesale on every refresh
// and is never the source of truth for Evidence.Status; when both disagree,
// the overlay wins only for the AI badge and the raw status is shown
// separately.
type ComplianceOverlay struct {
	mu     sync.RWMutex
	checks map[int64]models.ComplianceCheck
}

func NewComplianceOverlay() *ComplianceOverlay {
	return &ComplianceOverlay{checks: make(map[int64]models.ComplianceCheck)}
}

// Replace swaps in a new mapping built from checks. Later entries for the
// same evidence id win, mirroring the backend's at-most-one-active-check
// contract.
func (o *ComplianceOverlay) Replace(checks []models.ComplianceCheck) {
	next := make(map[int64]models.ComplianceCheck, len(checks))
	for _, c := range checks {
		next[c.EvidenceID] = c
	}

	o.mu.Lock()
	o.checks = next
	o.mu.Unlock()
}

// StatusOf reports the AI verdict for an evidence id. ok is false when no
// check exists yet; callers render that as a pending state, never an error.
func (o *ComplianceOverlay) StatusOf(evidenceID int64) (models.CheckStatus, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	c, ok := o.checks[evidenceID]
	if !ok {
		return "", false
	}
	return c.Status, true
}

// DetailsOf returns the full check for an evidence id, if one exists.
func (o *ComplianceOverlay) DetailsOf(evidenceID int64) (models.ComplianceCheck, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	c, ok := o.checks[evidenceID]
	return c, ok
}

// AnyProcessing reports whether at least one check is still in flight.
// The poll watcher keeps refreshing while this holds.
func (o *ComplianceOverlay) AnyProcessing() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, c := range o.checks {
		if c.Status == models.CheckProcessing {
			return true
		}
	}
	return false
}

// Len reports how many evidence ids currently carry a check.
func (o *ComplianceOverlay) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.checks)
}
