// Package upload drives the lifecycle of a single in-flight evidence upload:
// required-field guard, simulated progress racing the real multipart request,
// store insertion on success, and a cosmetic cooldown before the next upload
// may begin.
package upload

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/client/state"
	"github.com/haktiv/evidencekeeper/internal/common"
)

// Phase is the upload state machine position.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseUploading  Phase = "uploading"
	PhaseFinalizing Phase = "finalizing"
	PhaseDone       Phase = "done"
)

// Uploader is the slice of the transport the orchestrator needs.
type Uploader interface {
	UploadEvidence(ctx context.Context, controlID int64, name string, file io.Reader) (*models.Evidence, error)
}

// Selection is the pending upload form: a file handle opener plus the target
// control. Both must be set before Run will start.
type Selection struct {
	Name      string
	ControlID int64
	Open      func() (io.ReadCloser, error)
}

// Orchestrator owns at most one UploadSession at a time. Run refuses to
// start while a previous session is uploading or finalizing.
type Orchestrator struct {
	client    Uploader
	store     *state.EvidenceStore
	estimator ProgressEstimator
	cooldown  time.Duration

	// onSuccess is the invalidate hook: a successful upload invalidates the
	// compliance overlay and the caller refreshes it here.
	onSuccess func(ctx context.Context)

	mu        sync.Mutex
	phase     Phase
	progress  int
	selection *Selection
	sessionID string
}

func NewOrchestrator(client Uploader, store *state.EvidenceStore, estimator ProgressEstimator, cooldown time.Duration, onSuccess func(ctx context.Context)) *Orchestrator {
	if onSuccess == nil {
		onSuccess = func(context.Context) {}
	}
	return &Orchestrator{
		client:    client,
		store:     store,
		estimator: estimator,
		cooldown:  cooldown,
		onSuccess: onSuccess,
		phase:     PhaseIdle,
	}
}

// Select stages the upload form. Replacing a selection while a session is
// running is rejected.
func (o *Orchestrator) Select(sel Selection) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase == PhaseUploading || o.phase == PhaseFinalizing {
		return common.ErrUploadInProgress
	}
	o.selection = &sel
	return nil
}

// ClearSelection drops the staged form without starting an upload.
func (o *Orchestrator) ClearSelection() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase == PhaseIdle || o.phase == PhaseDone {
		o.selection = nil
	}
}

func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Progress is the displayed percentage in [0,100].
func (o *Orchestrator) Progress() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress
}

func (o *Orchestrator) setProgress(p int) {
	o.mu.Lock()
	if p > 100 {
		p = 100
	}
	o.progress = p
	o.mu.Unlock()
}

// Run executes one upload session to completion. It blocks until the server
// answers; the cooldown reset to idle happens asynchronously afterwards.
//
// Guard: no transition unless both file and control are selected and no
// other session is active. On failure the store is left untouched and the
// phase returns to idle immediately.
func (o *Orchestrator) Run(ctx context.Context) (*models.Evidence, error) {
	o.mu.Lock()
	if o.phase == PhaseUploading || o.phase == PhaseFinalizing {
		o.mu.Unlock()
		return nil, common.ErrUploadInProgress
	}
	sel := o.selection
	if sel == nil || sel.Name == "" || sel.ControlID == 0 || sel.Open == nil {
		o.mu.Unlock()
		return nil, common.ErrNothingSelected
	}
	o.phase = PhaseUploading
	o.progress = 0
	o.sessionID = uuid.NewString()
	o.mu.Unlock()

	file, err := sel.Open()
	if err != nil {
		o.abort()
		return nil, fmt.Errorf("opening %s: %w", sel.Name, err)
	}
	defer file.Close()

	o.estimator.Start(o.setProgress)

	created, err := o.client.UploadEvidence(ctx, sel.ControlID, sel.Name, file)
	if err != nil {
		o.abort()
		return nil, err
	}

	o.mu.Lock()
	o.phase = PhaseFinalizing
	o.progress = 100
	o.selection = nil
	o.mu.Unlock()
	o.estimator.Stop()

	o.store.Insert(*created)
	o.onSuccess(ctx)

	o.mu.Lock()
	o.phase = PhaseDone
	o.mu.Unlock()

	// Cosmetic debounce: progress resets and the next upload unlocks after
	// a fixed delay. Not cancellable.
	time.AfterFunc(o.cooldown, func() {
		o.mu.Lock()
		if o.phase == PhaseDone {
			o.phase = PhaseIdle
			o.progress = 0
		}
		o.mu.Unlock()
	})

	return created, nil
}

// abort stops the estimator and rolls the machine back to idle without
// touching the store.
func (o *Orchestrator) abort() {
	o.estimator.Stop()
	o.mu.Lock()
	o.phase = PhaseIdle
	o.progress = 0
	o.mu.Unlock()
}

// Teardown is called when the UI goes away; it makes sure no timer keeps
// mutating state.
func (o *Orchestrator) Teardown() {
	o.estimator.Stop()
}

// SessionID identifies the most recent upload session, for log correlation.
func (o *Orchestrator) SessionID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sessionID
}
