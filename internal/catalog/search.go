package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxTypoRatio bounds how far a query may drift from a title and still match.
const maxTypoRatio = 0.4

// Closest finds the entry whose title best matches query. A case-insensitive
// prefix wins outright; otherwise the smallest edit distance is used, as long
// as it stays under maxTypoRatio of the longer string.
func (c *Catalog) Closest(query string) (int, bool) {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return 0, false
	}
	for i, e := range c.entries {
		if strings.HasPrefix(strings.ToUpper(e.Title), q) {
			return i, true
		}
	}
	best, bestScore := -1, 1.0
	for i, e := range c.entries {
		title := strings.ToUpper(e.Title)
		dist := levenshtein.ComputeDistance(q, title)
		score := float64(dist) / float64(max(len(q), len(title)))
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore >= maxTypoRatio {
		return 0, false
	}
	return best, true
}
