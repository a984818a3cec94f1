// Package evidence caches the last-fetched evidence list for offline reads.
package evidence

import (
	"context"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

type Repository interface {
	// ReplaceAll swaps the cached snapshot for items, preserving their order.
	ReplaceAll(ctx context.Context, items []models.Evidence) error

	// GetAll returns the cached snapshot in original fetch order.
	GetAll(ctx context.Context) ([]models.Evidence, error)
}
