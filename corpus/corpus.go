// Package corpus renders stored law articles into the ordered textual
// exhibit handed to the reasoning engine. Ordering is a correctness
// requirement, not cosmetic: the engine is instructed to cite these
// article numbers back.
package corpus

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lexaudit-backend/models"
)

// Assemble renders every article of one law as a single text blob, ordered
// by the numeric value of the article number ("2" sorts before "10";
// dotted numbers such as "4.2" sort by integer part, then fractional
// remainder). Each article is a fixed three-line block followed by a
// separator.
func Assemble(lawID string, articles []models.Article) string {
	sorted := make([]models.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return numberLess(sorted[i].Number, sorted[j].Number)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "FEDERAL LAW %s\n\n", strings.ToUpper(lawID))

	for _, a := range sorted {
		fmt.Fprintf(&b, "ARTICLE %s\n", a.Number)
		fmt.Fprintf(&b, "Title: %s\n", a.Title)
		fmt.Fprintf(&b, "Content: %s\n", a.Content)
		b.WriteString("---\n\n")
	}

	return b.String()
}

// numberLess compares two dotted article numbers by numeric value.
// Numbers that do not parse sort after numeric ones, lexically.
func numberLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)

	switch {
	case errA == nil && errB == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
