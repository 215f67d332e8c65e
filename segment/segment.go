// Package segment turns raw regulatory text into storable article records.
// All functions are pure: they operate on immutable input text and return
// candidate spans. Overlapping matches across pattern families are allowed;
// the article store's (law_id, number) upsert key collapses them.
package segment

import (
	"regexp"
	"strings"

	"lexaudit-backend/models"
)

const (
	// MinContentLength is the shortest span accepted as a real article.
	// Anything below it is segmentation noise and is dropped silently.
	MinContentLength = 30

	// StoredContentLength caps article content at persistence time.
	// Over-long spans are truncated, not rejected.
	StoredContentLength = 2000
)

// Candidate is one span of text matched by a boundary pattern family.
type Candidate struct {
	Number  string
	Content string
}

// boundaryPatterns anchor on a lexical marker of an article boundary
// followed by a dotted number. The "Article"/"ARTICLE" spellings fold into
// one case-insensitive family; the abbreviated "art." form is its own.
var boundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\barticle\s+(\d+(?:\.\d+)*)\.?\s*`),
	regexp.MustCompile(`(?i)\bart\.\s*(\d+(?:\.\d+)*)\.?\s*`),
}

var sentenceEnd = regexp.MustCompile(`[.!?]`)

// Segment applies every boundary pattern family to the text independently.
// A candidate's content runs from the end of its marker to the start of the
// next marker of the same family, or to the end of the text. Candidates
// shorter than MinContentLength are discarded.
func Segment(text string) []Candidate {
	var candidates []Candidate

	for _, pattern := range boundaryPatterns {
		markers := pattern.FindAllStringSubmatchIndex(text, -1)
		for i, m := range markers {
			number := text[m[2]:m[3]]

			start := m[1]
			end := len(text)
			if i+1 < len(markers) {
				end = markers[i+1][0]
			}

			content := strings.TrimSpace(text[start:end])
			if len(content) < MinContentLength {
				continue
			}

			candidates = append(candidates, Candidate{
				Number:  number,
				Content: content,
			})
		}
	}

	return candidates
}

// Title returns the first sentence of the content, or the whole content
// when no sentence terminator exists.
func Title(content string) string {
	if loc := sentenceEnd.FindStringIndex(content); loc != nil {
		return strings.TrimSpace(content[:loc[0]])
	}
	return strings.TrimSpace(content)
}

// BuildArticle converts a candidate span into a storable article record,
// applying the persistence-time content cap. Title and keywords are
// derived from the capped content.
func BuildArticle(lawID string, c Candidate) models.Article {
	content := c.Content
	if len(content) > StoredContentLength {
		content = content[:StoredContentLength]
	}

	return models.Article{
		LawID:    lawID,
		Number:   c.Number,
		Title:    Title(content),
		Content:  content,
		Keywords: Keywords(content),
	}
}
