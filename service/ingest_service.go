package service

import (
	"context"
	"errors"
	"log"
	"os"

	"lexaudit-backend/segment"
)

// IngestService populates the article store from raw law text. Ingestion
// is idempotent: the same law text always produces the same stored rows.
type IngestService struct {
	articles ArticleStore
}

// IngestServiceOption is a functional option for IngestService
type IngestServiceOption func(*IngestService)

// IngestWithArticleStore sets the article store
func IngestWithArticleStore(store ArticleStore) IngestServiceOption {
	return func(s *IngestService) {
		s.articles = store
	}
}

// NewIngestService creates a new ingest service
func NewIngestService(opts ...IngestServiceOption) *IngestService {
	s := &IngestService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ErrArticleStoreNotSet reports a misconfigured service
var ErrArticleStoreNotSet = errors.New("article store not set")

// IngestLaw segments the raw text and upserts every candidate article,
// returning the number of articles stored. A law with zero matches is not
// an error: it yields 0, and callers decide what that means. Individual
// store failures are logged and skipped.
func (s *IngestService) IngestLaw(ctx context.Context, rawText, lawID string) (int, error) {
	if s.articles == nil {
		return 0, ErrArticleStoreNotSet
	}

	count := 0
	for _, candidate := range segment.Segment(rawText) {
		article := segment.BuildArticle(lawID, candidate)
		if err := s.articles.Upsert(ctx, &article); err != nil {
			log.Printf("Warning: failed to store article %s of %s: %v", article.Number, lawID, err)
			continue
		}
		count++
	}

	return count, nil
}

// IngestLawFile ingests a law from a text file on disk. An unreadable
// source is not fatal: it is logged and yields 0 articles.
func (s *IngestService) IngestLawFile(ctx context.Context, path, lawID string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: cannot read law source %s: %v", path, err)
		return 0
	}

	count, err := s.IngestLaw(ctx, string(data), lawID)
	if err != nil {
		log.Printf("Warning: failed to ingest %s: %v", lawID, err)
		return 0
	}

	return count
}

// Status returns the number of articles stored for a law
func (s *IngestService) Status(ctx context.Context, lawID string) (int, error) {
	if s.articles == nil {
		return 0, ErrArticleStoreNotSet
	}
	return s.articles.CountByLaw(ctx, lawID)
}
