package controls

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

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.Control) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM controls`); err != nil {
		return fmt.Errorf("failed to clear controls cache: %w", err)
	}
	for _, c := range items {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO controls (id, name, status, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, string(c.Status), c.CreatedBy, c.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to cache control %d: %w", c.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Control, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, status, created_by, created_at FROM controls ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select controls: %w", err)
	}
	defer rows.Close()

	var result []models.Control
	for rows.Next() {
		var c models.Control
		var status, createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &status, &c.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		c.Status = models.ControlStatus(status)
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result = append(result, c)
	}
	return result, rows.Err()
}
