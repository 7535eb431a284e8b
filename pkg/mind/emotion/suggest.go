package emotion

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// maxSuggestDistance is the largest Levenshtein distance still considered a
// plausible misspelling of a table keyword.
const maxSuggestDistance = 3

// SuggestKeyword returns the table keyword with the smallest Levenshtein
// distance to label, for diagnostic logging when a self-analysis label falls
// through the whole table. The match never influences blending — unmatched
// labels always contribute the baseline vector.
//
// ok is false when no keyword is within [maxSuggestDistance] edits.
func SuggestKeyword(label string) (keyword string, distance int, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return "", 0, false
	}

	best := maxSuggestDistance + 1
	for _, e := range Table {
		d := matchr.Levenshtein(lower, e.Keyword)
		if d < best {
			best = d
			keyword = e.Keyword
		}
	}
	if best > maxSuggestDistance {
		return "", 0, false
	}
	return keyword, best, true
}
