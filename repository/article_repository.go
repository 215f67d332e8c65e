package repository

import (
	"context"
	"fmt"

	"lexaudit-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ArticleRepository handles database operations for law articles
type ArticleRepository struct {
	db *pgxpool.Pool
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Upsert inserts an article or overwrites the existing row with the same
// (law_id, article_number) key. Ingestion is idempotent because of this.
func (r *ArticleRepository) Upsert(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO law_articles (law_id, article_number, title, content, keywords)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (law_id, article_number) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			keywords = EXCLUDED.keywords
		RETURNING created_at`

	err := r.db.QueryRow(
		ctx, query,
		article.LawID,
		article.Number,
		article.Title,
		article.Content,
		article.Keywords,
	).Scan(&article.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert article %s: %w", article.Number, err)
	}

	return nil
}

// ListByLaw retrieves every stored article for a law. Ordering is left to
// the corpus assembler, which sorts by numeric article number.
func (r *ArticleRepository) ListByLaw(ctx context.Context, lawID string) ([]models.Article, error) {
	query := `
		SELECT law_id, article_number, title, content, keywords, created_at
		FROM law_articles
		WHERE law_id = $1`

	rows, err := r.db.Query(ctx, query, lawID)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		err := rows.Scan(
			&a.LawID,
			&a.Number,
			&a.Title,
			&a.Content,
			&a.Keywords,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// CountByLaw returns the number of stored articles for a law
func (r *ArticleRepository) CountByLaw(ctx context.Context, lawID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM law_articles WHERE law_id = $1", lawID,
	).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}
