package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"lexaudit-backend/corpus"
	"lexaudit-backend/models"
	"lexaudit-backend/oracle"
	"lexaudit-backend/verdict"
)

const (
	// defaultMinCorpusSize guards against asking the engine to judge a
	// contract against an empty or garbage corpus.
	defaultMinCorpusSize = 50

	excerptLength = 500

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// AnalysisService runs a contract through the full pipeline: corpus
// assembly, engine invocation, verdict resolution, provenance. Every
// runtime failure terminates in a well-formed Verdict; the error return
// is reserved for service misconfiguration.
type AnalysisService struct {
	articles      ArticleStore
	records       AnalysisStore
	engine        oracle.Client
	minCorpusSize int
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// AnalysisWithArticleStore sets the article store
func AnalysisWithArticleStore(store ArticleStore) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.articles = store
	}
}

// AnalysisWithRecordStore sets the provenance store
func AnalysisWithRecordStore(store AnalysisStore) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.records = store
	}
}

// AnalysisWithOracle sets the reasoning engine client. A nil client is
// tolerated: analyses then resolve to an error Verdict per request.
func AnalysisWithOracle(client oracle.Client) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.engine = client
	}
}

// AnalysisWithMinCorpusSize overrides the minimum rendered corpus size
func AnalysisWithMinCorpusSize(size int) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.minCorpusSize = size
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{
		minCorpusSize: defaultMinCorpusSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeContractRequest carries one analysis request. Filename is
// optional and only decorates the provenance excerpt.
type AnalyzeContractRequest struct {
	ContractText string
	LawID        string
	Filename     string
}

// AnalyzeContract analyzes a contract against one law and always returns
// a complete Verdict: corpus too small, engine unreachable and malformed
// responses all map to their verdict tier instead of propagating. The
// engine call is made at most once; retrying is the caller's decision.
func (s *AnalysisService) AnalyzeContract(ctx context.Context, req AnalyzeContractRequest) (*models.Verdict, error) {
	if s.articles == nil {
		return nil, errors.New("article store not set")
	}

	if s.engine == nil {
		v := errorVerdict("the reasoning engine is not connected", models.Issues{{
			ArticleReference: "system error",
			Description:      "the reasoning engine is not connected",
			Recommendation:   "check the engine credentials and configuration",
		}})
		s.record(ctx, req, v)
		return v, nil
	}

	articles, err := s.articles.ListByLaw(ctx, req.LawID)
	if err != nil {
		v := errorVerdict(fmt.Sprintf("failed to load the law corpus for %s", req.LawID), models.Issues{{
			ArticleReference: "system error",
			Description:      fmt.Sprintf("failed to load the law corpus: %v", err),
			Recommendation:   "retry the request or check the article store",
		}})
		s.record(ctx, req, v)
		return v, nil
	}

	exhibit := corpus.Assemble(req.LawID, articles)
	if len(exhibit) < s.minCorpusSize {
		v := errorVerdict(fmt.Sprintf("not enough stored law text for %s to analyze against", req.LawID), models.Issues{})
		s.record(ctx, req, v)
		return v, nil
	}

	prompt := oracle.BuildPrompt(req.ContractText, exhibit, req.LawID)

	raw, err := s.engine.Complete(ctx, prompt)
	if err != nil {
		log.Printf("Warning: engine call failed for %s: %v", req.LawID, err)
		v := errorVerdict(fmt.Sprintf("analysis failed: %v", err), models.Issues{{
			ArticleReference: "system error",
			Description:      fmt.Sprintf("error during analysis: %v", err),
			Recommendation:   "retry the request or check the engine connection",
		}})
		s.record(ctx, req, v)
		return v, nil
	}

	v := verdict.Resolve(raw)
	s.record(ctx, req, v)
	return v, nil
}

// History returns recent provenance records for a law, newest first.
// A non-positive limit falls back to the default.
func (s *AnalysisService) History(ctx context.Context, lawID string, limit int) ([]models.AnalysisRecord, error) {
	if s.records == nil {
		return nil, errors.New("record store not set")
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	return s.records.ListByLaw(ctx, lawID, limit)
}

func errorVerdict(summary string, issues models.Issues) *models.Verdict {
	return &models.Verdict{
		ComplianceStatus: models.StatusError,
		Summary:          summary,
		Issues:           issues,
	}
}

// record appends the provenance row. Provenance is diagnostic: a failed
// insert is logged and swallowed, never surfaced to the caller.
func (s *AnalysisService) record(ctx context.Context, req AnalyzeContractRequest, v *models.Verdict) {
	if s.records == nil {
		return
	}

	excerpt := req.ContractText
	if len(excerpt) > excerptLength {
		excerpt = excerpt[:excerptLength]
	}
	if req.Filename != "" {
		excerpt = "[" + req.Filename + "] " + excerpt
	}

	rec := &models.AnalysisRecord{
		LawID:            req.LawID,
		ContractExcerpt:  excerpt,
		ComplianceStatus: v.ComplianceStatus,
		Issues:           v.Issues,
		Summary:          v.Summary,
	}

	if err := s.records.Insert(ctx, rec); err != nil {
		log.Printf("Warning: failed to record analysis for %s: %v", req.LawID, err)
	}
}
