// Package controls caches the last-fetched control list locally so the CLI
// can show something useful while the backend is unreachable.
package controls

import (
	"context"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

type Repository interface {
	// ReplaceAll swaps the cached snapshot for items.
	ReplaceAll(ctx context.Context, items []models.Control) error

	// GetAll returns the cached snapshot in id order.
	GetAll(ctx context.Context) ([]models.Control, error)
}
