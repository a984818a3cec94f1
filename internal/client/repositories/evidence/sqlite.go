package evidence

import (
	"context"
	"fmt"
	"time"

	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.Evidence) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM evidence`); err != nil {
		return fmt.Errorf("failed to clear evidence cache: %w", err)
	}
	for pos, e := range items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO evidence (id, control, name, file, status, created_by, created_at, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Control, e.Name, e.File, string(e.Status), e.CreatedBy,
			e.CreatedAt.Format(time.RFC3339), pos)
		if err != nil {
			return fmt.Errorf("failed to cache evidence %d: %w", e.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Evidence, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, control, name, file, status, created_by, created_at FROM evidence ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to select evidence: %w", err)
	}
	defer rows.Close()

	var result []models.Evidence
	for rows.Next() {
		var e models.Evidence
		var status, createdAt string
		if err := rows.Scan(&e.ID, &e.Control, &e.Name, &e.File, &status, &e.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		e.Status = models.EvidenceStatus(status)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result = append(result, e)
	}
	return result, rows.Err()
}
