package models

import (
	"time"
)

// AnalysisRecord is the provenance row written after every completed
// analysis. Records are append-only and never updated; a failed insert is
// logged and swallowed so that provenance can never break an analysis.
type AnalysisRecord struct {
	ID               int64            `json:"id"`
	LawID            string           `json:"law_id"`
	ContractExcerpt  string           `json:"contract_excerpt"`
	ComplianceStatus ComplianceStatus `json:"compliance_status"`
	Issues           Issues           `json:"issues"`
	Summary          string           `json:"summary"`
	CreatedAt        time.Time        `json:"created_at"`
}
