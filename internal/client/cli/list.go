package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/common"
)

// checkBadge renders the verdict marker shown next to an evidence row.
// Evidence without a check carries no badge at all.
func (a *App) checkBadge(evidenceID int64) string {
	status, ok := a.overlay.StatusOf(evidenceID)
	if !ok {
		return ""
	}
	switch status {
	case models.CheckProcessing:
		return " [AI: processing...]"
	case models.CheckApproved:
		return " [AI: approved]"
	case models.CheckRejected:
		return " [AI: rejected]"
	case models.CheckError:
		return " [AI: error]"
	}
	return ""
}

// List prints the evidence table with control names and verdict badges.
func (a *App) List(ctx context.Context) error {
	items := a.store.All()
	if len(items) == 0 {
		printlnFn("No evidence files yet.")
		return nil
	}

	for _, e := range items {
		printlnFn(fmt.Sprintf("%4d  %-40s %-25s %s%s",
			e.ID, e.Name, a.dataService.ControlName(e.Control), e.Status, a.checkBadge(e.ID)))
	}
	printlnFn(fmt.Sprintf("Total files: %d", len(items)))
	return nil
}

// Refresh re-reads controls, evidence, and verdicts from the backend. When
// the backend is unreachable the cached data set is loaded instead.
func (a *App) Refresh(ctx context.Context) error {
	err := a.dataService.Refresh(ctx)
	if err == nil {
		printlnFn("Refreshed.")
		return nil
	}
	if errors.Is(err, common.ErrUnavailable) {
		printlnFn("Backend unreachable, trying local cache...")
		if cerr := a.dataService.LoadFromCache(ctx); cerr == nil {
			a.setMode(ModeOffline)
			printlnFn("Showing cached data (read-only).")
			return nil
		}
		printlnFn("No cached data available.")
	}
	log.Printf("refresh: %v", err)
	return err
}
