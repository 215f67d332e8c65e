package models

import (
	"database/sql/driver"
	"encoding/json"
)

// ComplianceStatus represents the outcome class of a contract analysis
type ComplianceStatus string

const (
	StatusCompliant            ComplianceStatus = "compliant"
	StatusPartiallyCompliant   ComplianceStatus = "partially_compliant"
	StatusNonCompliant         ComplianceStatus = "non_compliant"
	StatusUndetermined         ComplianceStatus = "undetermined"
	StatusError                ComplianceStatus = "error"
	StatusRequiresManualReview ComplianceStatus = "requires_manual_review"
)

// Issue is a single deviation flagged during analysis. The json tags match
// the wire shape the reasoning engine is instructed to emit.
type Issue struct {
	ArticleReference string `json:"article"`
	Description      string `json:"issue"`
	Recommendation   string `json:"recommendation"`
}

// Issues is an ordered list of issues
type Issues []Issue

// Value implements driver.Valuer for JSONB
func (i Issues) Value() (driver.Value, error) {
	if i == nil {
		return json.Marshal(Issues{})
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner for JSONB
func (i *Issues) Scan(value interface{}) error {
	if value == nil {
		*i = Issues{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*i = Issues{}
		return nil
	}

	return json.Unmarshal(bytes, i)
}

// Verdict is the canonical result of a contract analysis. All three fields
// are always populated, whatever the reasoning engine returned.
type Verdict struct {
	ComplianceStatus ComplianceStatus `json:"compliance_status"`
	Summary          string           `json:"summary"`
	Issues           Issues           `json:"issues"`
}
