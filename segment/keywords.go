package segment

import (
	"regexp"
	"sort"
	"strings"
)

// MaxKeywords caps the keyword set stored per article.
const MaxKeywords = 10

var keywordToken = regexp.MustCompile(`\b[a-z]{4,}\b`)

// stopWords are common function words excluded from keyword extraction.
// Only words of keyword length (4+) need to appear here.
var stopWords = map[string]struct{}{
	"about": {}, "above": {}, "after": {}, "again": {}, "also": {},
	"another": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "cannot": {}, "could": {},
	"does": {}, "doing": {}, "down": {}, "during": {}, "each": {},
	"either": {}, "every": {}, "from": {}, "further": {}, "have": {},
	"having": {}, "here": {}, "into": {}, "itself": {}, "many": {},
	"more": {}, "most": {}, "much": {}, "must": {}, "neither": {},
	"only": {}, "other": {}, "over": {}, "same": {}, "shall": {},
	"should": {}, "some": {}, "such": {}, "than": {}, "that": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "through": {}, "under": {},
	"until": {}, "upon": {}, "very": {}, "were": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "will": {}, "with": {},
	"within": {}, "without": {}, "would": {},
}

// Keywords extracts up to MaxKeywords lowercase tokens of length 4 or more
// from the content, with stop words removed. Selection is deterministic:
// tokens rank by frequency, ties break lexically.
func Keywords(content string) []string {
	counts := make(map[string]int)
	for _, token := range keywordToken.FindAllString(strings.ToLower(content), -1) {
		if _, stop := stopWords[token]; stop {
			continue
		}
		counts[token]++
	}

	keywords := make([]string, 0, len(counts))
	for token := range counts {
		keywords = append(keywords, token)
	}

	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})

	if len(keywords) > MaxKeywords {
		keywords = keywords[:MaxKeywords]
	}

	return keywords
}
