// Package oracle is the boundary to the external reasoning engine. The
// engine is treated as an opaque, fallible text-completion service: the
// pipeline hands it one prompt and receives raw text back.
package oracle

import (
	"context"
	"fmt"
)

// Client is the single capability the analysis pipeline needs from a
// reasoning engine. Implementations must honor context cancellation and
// return an error on any transport, credential or timeout failure.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// The engine has a fixed-size context, so both inputs are truncated rather
// than rejected. Very long contracts are therefore analyzed only on their
// first MaxContractLength characters, a documented precision tradeoff.
const (
	MaxCorpusLength   = 8000
	MaxContractLength = 6000
)

const promptTemplate = `You are a document analysis assistant.
Your task is to compare two texts and identify substantive discrepancies.

The first text contains excerpts from the regulatory document %s.
The second text is a contract.

Determine:
1. Where the contract contradicts provisions of the first text.
2. Where wording may create ambiguity.
3. Give short suggestions for clarifying or correcting the text.

Answer strictly as a JSON object, with no explanations and no extra text:
{
  "compliance_status": "compliant|partially_compliant|non_compliant",
  "summary": "short summary of the conclusion",
  "issues": [
    {
      "article": "article number (if applicable)",
      "issue": "description of the discrepancy found",
      "recommendation": "suggested improvement"
    }
  ]
}

Cite only article numbers that appear in the excerpts of the first text.

TEXT 1 (regulatory excerpts):
%s

TEXT 2 (contract):
%s

Answer strictly as JSON without commentary.`

// BuildPrompt embeds the contract and the assembled law corpus into the
// fixed instruction template, truncated to the engine's context budget.
func BuildPrompt(contractText, corpusText, lawID string) string {
	return fmt.Sprintf(promptTemplate,
		lawID,
		truncate(corpusText, MaxCorpusLength),
		truncate(contractText, MaxContractLength),
	)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
