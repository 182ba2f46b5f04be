package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// matchThreshold is the largest normalized distance still counted as a hit.
// 0 is an exact substring, 1 means nothing in the field resembles the query.
const matchThreshold = 0.4

// fieldScore rates how well query matches anywhere inside text (both already
// lowercased). Matching is location-agnostic: an exact substring scores 0
// wherever it occurs; otherwise the score is the best edit distance between
// the query and any query-sized window of the text, normalized by query
// length.
func fieldScore(text, query string) float64 {
	if text == "" {
		return 1
	}
	if strings.Contains(text, query) {
		return 0
	}

	qr := []rune(query)
	tr := []rune(text)
	qlen := len(qr)

	if len(tr) <= qlen {
		return normalize(levenshtein.ComputeDistance(text, query), qlen)
	}

	best := qlen
	// Windows one rune longer than the query catch single insertions.
	for _, w := range []int{qlen, qlen + 1} {
		if w > len(tr) {
			continue
		}
		for i := 0; i+w <= len(tr); i++ {
			d := levenshtein.ComputeDistance(string(tr[i:i+w]), query)
			if d < best {
				best = d
				if best == 0 {
					return 0
				}
			}
		}
	}
	return normalize(best, qlen)
}

func normalize(dist, qlen int) float64 {
	if qlen == 0 {
		return 1
	}
	s := float64(dist) / float64(qlen)
	if s > 1 {
		return 1
	}
	return s
}
