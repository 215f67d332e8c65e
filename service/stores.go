package service

import (
	"context"

	"lexaudit-backend/models"
)

// ArticleStore is the slice of the article repository the services need
type ArticleStore interface {
	Upsert(ctx context.Context, article *models.Article) error
	ListByLaw(ctx context.Context, lawID string) ([]models.Article, error)
	CountByLaw(ctx context.Context, lawID string) (int, error)
}

// AnalysisStore receives append-only provenance records and serves them
// back for audit, newest first
type AnalysisStore interface {
	Insert(ctx context.Context, record *models.AnalysisRecord) error
	ListByLaw(ctx context.Context, lawID string, limit int) ([]models.AnalysisRecord, error)
}
