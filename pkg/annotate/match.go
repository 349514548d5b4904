package annotate

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/halldor/annotar/pkg/geom"
)

// Word is a positioned text run within a unit: a word on a page, an OCR
// token, or a populated spreadsheet cell. For grid units Rect carries
// row/column indices rather than point coordinates.
type Word struct {
	Text string
	Rect geom.Rect
}

// Match records one located occurrence of the query. Rect stays in the
// owning unit's native coordinate space.
type Match struct {
	UnitIndex int
	Text      string
	Rect      geom.Rect
}

// NormalizeQuery trims and case-folds a raw query string. The result feeds
// FindMatches, which assumes an already-normalized query.
func NormalizeQuery(query string) string {
	return cases.Fold().String(strings.TrimSpace(query))
}

// FindMatches scans the unit's words for case-insensitive substring
// containment of query and returns one match per matching word, in input
// order. No matches is an empty (nil) result, not an error.
func FindMatches(unitIndex int, words []Word, query string) []Match {
	var matches []Match
	fold := cases.Fold()
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		if strings.Contains(fold.String(text), query) {
			matches = append(matches, Match{
				UnitIndex: unitIndex,
				Text:      text,
				Rect:      w.Rect,
			})
		}
	}
	return matches
}
