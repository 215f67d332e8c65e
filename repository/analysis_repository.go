package repository

import (
	"context"
	"fmt"

	"lexaudit-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalysisRepository handles the append-only provenance table. Rows are
// only ever inserted.
type AnalysisRepository struct {
	db *pgxpool.Pool
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Insert appends one provenance record
func (r *AnalysisRepository) Insert(ctx context.Context, record *models.AnalysisRecord) error {
	query := `
		INSERT INTO contract_analysis (law_id, contract_excerpt, compliance_status, issues, summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		record.LawID,
		record.ContractExcerpt,
		record.ComplianceStatus,
		record.Issues,
		record.Summary,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert analysis record: %w", err)
	}

	return nil
}

// ListByLaw retrieves provenance records for a law, newest first
func (r *AnalysisRepository) ListByLaw(ctx context.Context, lawID string, limit int) ([]models.AnalysisRecord, error) {
	query := `
		SELECT id, law_id, contract_excerpt, compliance_status, issues, summary, created_at
		FROM contract_analysis
		WHERE law_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, lawID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis records: %w", err)
	}
	defer rows.Close()

	var records []models.AnalysisRecord
	for rows.Next() {
		var rec models.AnalysisRecord
		err := rows.Scan(
			&rec.ID,
			&rec.LawID,
			&rec.ContractExcerpt,
			&rec.ComplianceStatus,
			&rec.Issues,
			&rec.Summary,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
