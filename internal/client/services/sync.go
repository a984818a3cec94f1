package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/haktiv/evidencekeeper/internal/client/api"
	"github.com/haktiv/evidencekeeper/internal/client/cache"
	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/client/state"
	"github.com/haktiv/evidencekeeper/internal/common"
	"github.com/haktiv/evidencekeeper/internal/logging"
)

// derivedView names a projection that a mutation can invalidate. Mutations
// declare what they invalidate and applyInvalidations refreshes it, instead
// of each call site remembering to re-fetch.
type derivedView int

const (
	viewOverlay derivedView = iota
)

// SyncService reconciles the three client-side collections (controls,
// evidence, compliance overlay) with the backend, applies user mutations,
// and keeps the overlay fresh while verdicts are still processing.
type SyncService struct {
	client api.Client
	store  *state.EvidenceStore
	overlay *state.ComplianceOverlay
	dialog *state.DeleteDialog
	cache  *cache.Cache // optional; nil disables offline reads
	log    logging.Logger

	mu       sync.RWMutex
	controls []models.Control
}

func NewSyncService(client api.Client, store *state.EvidenceStore, overlay *state.ComplianceOverlay, c *cache.Cache, log logging.Logger) *SyncService {
	return &SyncService{
		client:  client,
		store:   store,
		overlay: overlay,
		dialog:  state.NewDeleteDialog(),
		cache:   c,
		log:     log,
	}
}

// Refresh performs the initial (or manual) full load: controls and evidence
// are fetched together and both must succeed before anything is applied;
// their relative completion order carries no meaning. The overlay refresh
// that follows is best-effort.
func (s *SyncService) Refresh(ctx context.Context) error {
	var (
		controls []models.Control
		evidence []models.Evidence
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		controls, err = s.client.ListControls(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		evidence, err = s.client.ListEvidence(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.controls = controls
	s.mu.Unlock()
	s.store.Load(evidence)

	s.RefreshChecks(ctx)
	s.writeCache(ctx)
	return nil
}

// RefreshChecks rebuilds the compliance overlay. Failures are logged and
// swallowed: stale overlay data beats an error interruption.
func (s *SyncService) RefreshChecks(ctx context.Context) {
	checks, err := s.client.ListComplianceChecks(ctx)
	if err != nil {
		s.log.Warn(ctx, "compliance overlay refresh failed", "err", err)
		return
	}
	s.overlay.Replace(checks)
}

// applyInvalidations is the trivial synchronous scheduler for the
// invalidate-and-refresh contract.
func (s *SyncService) applyInvalidations(ctx context.Context, views ...derivedView) {
	for _, v := range views {
		if v == viewOverlay {
			s.RefreshChecks(ctx)
		}
	}
}

// OnUploadComplete is the hook the upload orchestrator fires after a
// successful upload: the overlay is invalidated and the cache rewritten.
func (s *SyncService) OnUploadComplete(ctx context.Context) {
	s.applyInvalidations(ctx, viewOverlay)
	s.writeCache(ctx)
}

// RequestDelete opens the confirmation dialog for ids. Returns false when a
// deletion is already pending or none of the ids exist locally.
func (s *SyncService) RequestDelete(ids []int64) bool {
	names := s.store.Names(ids)
	if len(names) == 0 {
		return false
	}
	return s.dialog.Open(ids, names)
}

// ConfirmDelete commits the pending deletion: one batched backend request,
// then the dialog and the store update together. On failure the store is
// untouched and the dialog stays open for retry or cancel.
func (s *SyncService) ConfirmDelete(ctx context.Context) error {
	ids, ok := s.dialog.Begin()
	if !ok {
		return common.ErrNotFound
	}
	if err := s.client.DeleteEvidence(ctx, ids); err != nil {
		s.dialog.Fail()
		return err
	}
	s.store.RemoveMany(ids)
	s.dialog.Succeed()
	s.applyInvalidations(ctx, viewOverlay)
	s.writeCache(ctx)
	return nil
}

// CancelDelete abandons the pending deletion.
func (s *SyncService) CancelDelete() bool {
	return s.dialog.Cancel()
}

// Dialog exposes the deletion dialog for rendering.
func (s *SyncService) Dialog() *state.DeleteDialog {
	return s.dialog
}

// Controls returns the read-only control reference list.
func (s *SyncService) Controls() []models.Control {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Control, len(s.controls))
	copy(out, s.controls)
	return out
}

// ControlName resolves a control id for display; unknown ids read "Unknown".
func (s *SyncService) ControlName(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.controls {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}

// UpdateControlStatus flips a control's implementation state and reconciles
// the local reference list with the server's answer.
func (s *SyncService) UpdateControlStatus(ctx context.Context, id int64, status models.ControlStatus) error {
	updated, err := s.client.UpdateControlStatus(ctx, id, status)
	if err != nil {
		return err
	}
	s.mu.Lock()
	for i, c := range s.controls {
		if c.ID == updated.ID {
			s.controls[i] = *updated
		}
	}
	s.mu.Unlock()
	s.writeCache(ctx)
	return nil
}

// CheckFor fetches a fresh single-evidence verdict, bypassing the overlay.
func (s *SyncService) CheckFor(ctx context.Context, evidenceID int64) (*models.ComplianceCheck, error) {
	return s.client.ComplianceStatus(ctx, evidenceID)
}

// RetryCheck re-queues a rejected or errored verdict and invalidates the
// overlay so the new processing state becomes visible.
func (s *SyncService) RetryCheck(ctx context.Context, checkID int64) (*models.ComplianceCheck, error) {
	check, err := s.client.RetryComplianceCheck(ctx, checkID)
	if err != nil {
		return nil, err
	}
	s.applyInvalidations(ctx, viewOverlay)
	return check, nil
}

// StartCheckWatcher re-refreshes the overlay every interval while at least
// one verdict is still processing, so a user who keeps the client open sees
// verdicts land without manual refreshes. Blocks until ctx is done.
func (s *SyncService) StartCheckWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.overlay.AnyProcessing() {
				s.RefreshChecks(ctx)
			}
		case <-ctx.Done():
			return
		}
	}
}

// LoadFromCache populates the collections from the local cache, for reads
// while the backend is unreachable. The cached view is read-only.
func (s *SyncService) LoadFromCache(ctx context.Context) error {
	if s.cache == nil {
		return common.ErrCacheEmpty
	}
	snap, err := s.cache.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	if len(snap.Controls) == 0 && len(snap.Evidence) == 0 {
		return common.ErrCacheEmpty
	}
	s.mu.Lock()
	s.controls = snap.Controls
	s.mu.Unlock()
	s.store.Load(snap.Evidence)
	s.overlay.Replace(snap.Checks)
	return nil
}

// writeCache persists the current collections. Best effort: cache write
// failures never fail the triggering operation.
func (s *SyncService) writeCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	snap := cache.Snapshot{
		Controls: s.Controls(),
		Evidence: s.store.All(),
	}
	// rebuild the check list from the overlay's current contents
	for _, e := range snap.Evidence {
		if c, ok := s.overlay.DetailsOf(e.ID); ok {
			snap.Checks = append(snap.Checks, c)
		}
	}
	if err := s.cache.SaveSnapshot(ctx, snap); err != nil {
		s.log.Warn(ctx, "cache write failed", "err", err)
	}
}
