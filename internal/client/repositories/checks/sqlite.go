package checks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/haktiv/evidencekeeper/internal/client/models"
	"github.com/haktiv/evidencekeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.ComplianceCheck) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM compliance_checks`); err != nil {
		return fmt.Errorf("failed to clear checks cache: %w", err)
	}
	for _, c := range items {
		var analysis []byte
		if c.AIAnalysis != nil {
			var err error
			analysis, err = json.Marshal(c.AIAnalysis)
			if err != nil {
				return fmt.Errorf("failed to encode analysis for check %d: %w", c.ID, err)
			}
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO compliance_checks (id, evidence_id, status, ai_analysis, rejection_reason, recommendations)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.EvidenceID, string(c.Status), analysis, c.RejectionReason, c.Recommendations)
		if err != nil {
			return fmt.Errorf("failed to cache check %d: %w", c.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.ComplianceCheck, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, evidence_id, status, ai_analysis, rejection_reason, recommendations FROM compliance_checks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select checks: %w", err)
	}
	defer rows.Close()

	var result []models.ComplianceCheck
	for rows.Next() {
		var c models.ComplianceCheck
		var status string
		var analysis []byte
		if err := rows.Scan(&c.ID, &c.EvidenceID, &status, &analysis, &c.RejectionReason, &c.Recommendations); err != nil {
			return nil, err
		}
		c.Status = models.CheckStatus(status)
		if len(analysis) > 0 {
			var a models.AIAnalysis
			if err := json.Unmarshal(analysis, &a); err != nil {
				return nil, fmt.Errorf("failed to decode analysis for check %d: %w", c.ID, err)
			}
			c.AIAnalysis = &a
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
