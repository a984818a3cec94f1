package state

import (
	"strings"
	"sync"
)

// DialogPhase tracks the two-step confirm-then-commit deletion flow.
type DialogPhase string

const (
	DialogIdle           DialogPhase = "idle"
	DialogConfirmPending DialogPhase = "confirm_pending"
	DialogCommitting     DialogPhase = "committing"
)

// DeleteDialog carries the pending deletion: the target ids and a
// human-readable summary for the confirmation prompt. While committing, the
// confirm action is disabled and a busy indicator is shown.
type DeleteDialog struct {
	mu      sync.Mutex
	phase   DialogPhase
	ids     []int64
	summary string
}

func NewDeleteDialog() *DeleteDialog {
	return &DeleteDialog{phase: DialogIdle}
}

// Open moves idle -> confirmPending with the given targets. Returns false if
// a deletion is already pending or committing.
func (d *DeleteDialog) Open(ids []int64, names []string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != DialogIdle {
		return false
	}
	d.phase = DialogConfirmPending
	d.ids = append([]int64(nil), ids...)
	d.summary = strings.Join(names, ", ")
	return true
}

// Begin moves confirmPending -> committing. Returns the target ids, or
// ok=false when there is nothing to commit or a commit is already running.
func (d *DeleteDialog) Begin() ([]int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != DialogConfirmPending {
		return nil, false
	}
	d.phase = DialogCommitting
	return append([]int64(nil), d.ids...), true
}

// Succeed closes the dialog after a successful backend delete.
func (d *DeleteDialog) Succeed() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phase = DialogIdle
	d.ids = nil
	d.summary = ""
}

// Fail returns to confirmPending with the busy indicator cleared, keeping
// the dialog open so the user can retry or cancel.
func (d *DeleteDialog) Fail() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase == DialogCommitting {
		d.phase = DialogConfirmPending
	}
}

// Cancel abandons a pending deletion. Committing cannot be cancelled.
func (d *DeleteDialog) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != DialogConfirmPending {
		return false
	}
	d.phase = DialogIdle
	d.ids = nil
	d.summary = ""
	return true
}

func (d *DeleteDialog) Phase() DialogPhase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Summary is the joined names shown in the confirmation prompt.
func (d *DeleteDialog) Summary() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary
}
