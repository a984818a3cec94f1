// Package checks caches the last compliance-check snapshot for offline reads.
package checks

import (
	"context"

	"github.com/haktiv/evidencekeeper/internal/client/models"
)

type Repository interface {
	ReplaceAll(ctx context.Context, items []models.ComplianceCheck) error
	GetAll(ctx context.Context) ([]models.ComplianceCheck, error)
}
