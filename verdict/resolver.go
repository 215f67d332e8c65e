// Package verdict resolves the reasoning engine's free-form text response
// into a canonical, always-well-formed Verdict. Resolution is a chain of
// explicit steps: strict parse, coerce, normalize, with a fallback
// extraction tier when the response carries no parseable object. Every
// path terminates in a valid Verdict; a malformed response can never
// surface as a raw error.
package verdict

import (
	"encoding/json"
	"regexp"
	"strings"

	"lexaudit-backend/models"
)

const (
	defaultSummary  = "no conclusion provided"
	emptySummary    = "the reasoning engine returned no usable response"
	maxSummaryBytes = 1000

	fallbackDescription    = "a deviation was flagged near this article; manual review required"
	fallbackRecommendation = "review the contract against this article manually"
)

var (
	// articleMarker matches the same boundary-marker family used during
	// law segmentation, applied here to the engine's prose.
	articleMarker = regexp.MustCompile(`(?i)\bart(?:icle)?\.?\s*(\d+(?:\.\d+)*)`)

	referencePrefix = regexp.MustCompile(`(?i)\bart(?:icle)?\.?\s*`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Resolve parses, validates and normalizes the engine's raw response.
func Resolve(raw string) *models.Verdict {
	parsed, ok := strictParse(raw)
	if !ok {
		return fallbackExtract(raw)
	}

	v := coerce(parsed)
	normalize(v)
	return v
}

// strictParse locates the first '{' and the last '}' in the response and
// attempts to parse the enclosed span as a JSON object.
func strictParse(raw string) (map[string]interface{}, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return nil, false
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, false
	}

	return parsed, true
}

// coerce fills any missing or mis-shaped top-level field with its default.
// This step never fails.
func coerce(parsed map[string]interface{}) *models.Verdict {
	v := &models.Verdict{
		ComplianceStatus: models.StatusUndetermined,
		Summary:          defaultSummary,
		Issues:           models.Issues{},
	}

	if status, ok := parsed["compliance_status"].(string); ok && status != "" {
		v.ComplianceStatus = models.ComplianceStatus(status)
	}
	if summary, ok := parsed["summary"].(string); ok && summary != "" {
		v.Summary = summary
	}
	if items, ok := parsed["issues"].([]interface{}); ok {
		for _, item := range items {
			fields, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			v.Issues = append(v.Issues, models.Issue{
				ArticleReference: stringField(fields, "article"),
				Description:      stringField(fields, "issue"),
				Recommendation:   stringField(fields, "recommendation"),
			})
		}
	}

	return v
}

func stringField(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}

// normalize canonicalizes every issue's article reference so callers can
// match and group by reference regardless of the engine's phrasing.
func normalize(v *models.Verdict) {
	for i := range v.Issues {
		v.Issues[i].ArticleReference = CanonicalReference(v.Issues[i].ArticleReference)
	}
}

// CanonicalReference standardizes article reference markers to a single
// "Article N" prefix and collapses internal whitespace.
func CanonicalReference(ref string) string {
	ref = referencePrefix.ReplaceAllString(ref, "Article ")
	ref = whitespaceRun.ReplaceAllString(ref, " ")
	return strings.TrimSpace(ref)
}

// fallbackExtract handles responses with no parseable object: every
// article-marker occurrence in the prose becomes a synthetic issue, and a
// bounded prefix of the raw response is kept as the summary so a human can
// still inspect it.
func fallbackExtract(raw string) *models.Verdict {
	issues := models.Issues{}
	for _, m := range articleMarker.FindAllStringSubmatch(raw, -1) {
		issues = append(issues, models.Issue{
			ArticleReference: "Article " + m[1],
			Description:      fallbackDescription,
			Recommendation:   fallbackRecommendation,
		})
	}

	if len(issues) == 0 {
		issues = models.Issues{{
			ArticleReference: "response format",
			Description:      "the engine's response was not in a usable format",
			Recommendation:   "review the contract manually",
		}}
	}

	summary := emptySummary
	if raw != "" {
		summary = raw
		if len(summary) > maxSummaryBytes {
			summary = summary[:maxSummaryBytes]
		}
	}

	return &models.Verdict{
		ComplianceStatus: models.StatusRequiresManualReview,
		Summary:          summary,
		Issues:           issues,
	}
}
