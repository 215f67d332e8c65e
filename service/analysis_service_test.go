package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lexaudit-backend/models"
	"lexaudit-backend/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalysisStore struct {
	records   []*models.AnalysisRecord
	insertErr error
}

func (f *fakeAnalysisStore) Insert(ctx context.Context, record *models.AnalysisRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAnalysisStore) ListByLaw(ctx context.Context, lawID string, limit int) ([]models.AnalysisRecord, error) {
	var out []models.AnalysisRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].LawID == lawID {
			out = append(out, *f.records[i])
		}
	}
	return out, nil
}

type stubOracle struct {
	response string
	err      error
	called   bool
}

func (s *stubOracle) Complete(ctx context.Context, prompt string) (string, error) {
	s.called = true
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func storeWithLaw(lawID string) *fakeArticleStore {
	store := newFakeArticleStore()
	store.articles[lawID+"/1"] = models.Article{
		LawID:   lawID,
		Number:  "1",
		Title:   "Registration",
		Content: "Suppliers must be registered in the unified registry before bidding.",
	}
	return store
}

func TestAnalyzeContractWithoutArticleStore(t *testing.T) {
	svc := service.NewAnalysisService()

	_, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "contract",
		LawID:        "44_fz",
	})
	assert.Error(t, err)
}

func TestAnalyzeContractWithoutEngine(t *testing.T) {
	records := &fakeAnalysisStore{}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(storeWithLaw("44_fz")),
		service.AnalysisWithRecordStore(records),
	)

	v, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "contract",
		LawID:        "44_fz",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusError, v.ComplianceStatus)
	assert.Contains(t, v.Summary, "not connected")
	require.Len(t, records.records, 1)
	assert.Equal(t, models.StatusError, records.records[0].ComplianceStatus)
}

func TestAnalyzeContractInsufficientCorpus(t *testing.T) {
	engine := &stubOracle{response: `{"compliance_status": "compliant"}`}
	records := &fakeAnalysisStore{}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(newFakeArticleStore()),
		service.AnalysisWithRecordStore(records),
		service.AnalysisWithOracle(engine),
	)

	v, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "contract",
		LawID:        "44_fz",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusError, v.ComplianceStatus)
	assert.Contains(t, v.Summary, "not enough stored law text")
	assert.Empty(t, v.Issues)
	assert.False(t, engine.called, "a paid engine call must not be made without a corpus")
	require.Len(t, records.records, 1)
}

func TestAnalyzeContractCorpusLoadFailure(t *testing.T) {
	store := newFakeArticleStore()
	store.listErr = errors.New("connection refused")
	engine := &stubOracle{}
	records := &fakeAnalysisStore{}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(store),
		service.AnalysisWithRecordStore(records),
		service.AnalysisWithOracle(engine),
	)

	v, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "contract",
		LawID:        "44_fz",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusError, v.ComplianceStatus)
	assert.False(t, engine.called)
	require.Len(t, records.records, 1)
}

func TestAnalyzeContractEngineFailure(t *testing.T) {
	engine := &stubOracle{err: errors.New("deadline exceeded")}
	records := &fakeAnalysisStore{}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(storeWithLaw("44_fz")),
		service.AnalysisWithRecordStore(records),
		service.AnalysisWithOracle(engine),
	)

	v, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "contract",
		LawID:        "44_fz",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusError, v.ComplianceStatus)
	assert.Contains(t, v.Summary, "deadline exceeded")
	require.Len(t, v.Issues, 1)
	assert.Equal(t, "system error", v.Issues[0].ArticleReference)
	require.Len(t, records.records, 1)
}

func TestAnalyzeContractHappyPath(t *testing.T) {
	engine := &stubOracle{response: `{"compliance_status": "non_compliant", "summary": "missing registration clause", "issues": [{"article": "Article 1", "issue": "no registration clause", "recommendation": "add clause"}]}`}
	records := &fakeAnalysisStore{}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(storeWithLaw("44_fz")),
		service.AnalysisWithRecordStore(records),
		service.AnalysisWithOracle(engine),
	)

	v, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "The supplier will deliver goods without any registry checks.",
		LawID:        "44_fz",
		Filename:     "contract.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusNonCompliant, v.ComplianceStatus)
	assert.Equal(t, "missing registration clause", v.Summary)
	require.Len(t, v.Issues, 1)
	assert.Equal(t, "Article 1", v.Issues[0].ArticleReference)

	require.Len(t, records.records, 1)
	rec := records.records[0]
	assert.Equal(t, "44_fz", rec.LawID)
	assert.Equal(t, models.StatusNonCompliant, rec.ComplianceStatus)
	assert.True(t, strings.HasPrefix(rec.ContractExcerpt, "[contract.txt] "))
}

func TestAnalyzeContractExcerptTruncated(t *testing.T) {
	engine := &stubOracle{response: `{"compliance_status": "compliant", "summary": "ok"}`}
	records := &fakeAnalysisStore{}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(storeWithLaw("44_fz")),
		service.AnalysisWithRecordStore(records),
		service.AnalysisWithOracle(engine),
	)

	_, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: strings.Repeat("x", 600),
		LawID:        "44_fz",
	})
	require.NoError(t, err)

	require.Len(t, records.records, 1)
	assert.Len(t, records.records[0].ContractExcerpt, 500)
}

func TestAnalyzeContractSwallowsProvenanceFailure(t *testing.T) {
	engine := &stubOracle{response: `{"compliance_status": "compliant", "summary": "ok"}`}
	records := &fakeAnalysisStore{insertErr: errors.New("disk full")}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(storeWithLaw("44_fz")),
		service.AnalysisWithRecordStore(records),
		service.AnalysisWithOracle(engine),
	)

	v, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "contract",
		LawID:        "44_fz",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompliant, v.ComplianceStatus)
}

func TestAnalyzeContractFallbackResponse(t *testing.T) {
	engine := &stubOracle{response: "I believe the contract conflicts with Article 1 of the law."}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(storeWithLaw("44_fz")),
		service.AnalysisWithOracle(engine),
	)

	v, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "contract",
		LawID:        "44_fz",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusRequiresManualReview, v.ComplianceStatus)
	require.Len(t, v.Issues, 1)
	assert.Equal(t, "Article 1", v.Issues[0].ArticleReference)
}

func TestHistoryReturnsNewestFirst(t *testing.T) {
	engine := &stubOracle{response: `{"compliance_status": "compliant", "summary": "ok"}`}
	records := &fakeAnalysisStore{}
	svc := service.NewAnalysisService(
		service.AnalysisWithArticleStore(storeWithLaw("44_fz")),
		service.AnalysisWithRecordStore(records),
		service.AnalysisWithOracle(engine),
	)

	for _, text := range []string{"first contract", "second contract"} {
		_, err := svc.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
			ContractText: text,
			LawID:        "44_fz",
		})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), "44_fz", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second contract", history[0].ContractExcerpt)

	history, err = svc.History(context.Background(), "44_fz", 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestHistoryWithoutRecordStore(t *testing.T) {
	svc := service.NewAnalysisService(service.AnalysisWithArticleStore(newFakeArticleStore()))

	_, err := svc.History(context.Background(), "44_fz", 10)
	assert.Error(t, err)
}

func TestIngestThenAnalyzeEndToEnd(t *testing.T) {
	store := newFakeArticleStore()
	ingest := service.NewIngestService(service.IngestWithArticleStore(store))

	count, err := ingest.IngestLaw(context.Background(), sampleLaw, "44_fz")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	engine := &stubOracle{response: `{"compliance_status": "non_compliant", "summary": "missing registration clause", "issues": [{"article": "art. 1", "issue": "no registration clause", "recommendation": "add clause"}]}`}
	records := &fakeAnalysisStore{}
	analysis := service.NewAnalysisService(
		service.AnalysisWithArticleStore(store),
		service.AnalysisWithRecordStore(records),
		service.AnalysisWithOracle(engine),
	)

	v, err := analysis.AnalyzeContract(context.Background(), service.AnalyzeContractRequest{
		ContractText: "The supplier will deliver goods without any registry checks.",
		LawID:        "44_fz",
		Filename:     "contract.txt",
	})
	require.NoError(t, err)

	assert.True(t, engine.called)
	assert.Equal(t, models.StatusNonCompliant, v.ComplianceStatus)
	require.Len(t, v.Issues, 1)
	assert.Equal(t, "Article 1", v.Issues[0].ArticleReference)
	require.Len(t, records.records, 1)
}
