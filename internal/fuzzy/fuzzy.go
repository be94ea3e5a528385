// Package fuzzy provides approximate string matching for name
// reconciliation. Similarity is difflib's sequence ratio (2*M/T on a 0-1
// scale) computed over characters, so cutoffs carry the same meaning as
// the classic get_close_matches cutoff.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/unicode/norm"
)

// Ratio returns the similarity of a and b on a 0-1 scale, 1.0 when identical.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// Normalize lowercases, strips diacritics and collapses whitespace so that
// accent and casing noise in scraped names does not defeat matching.
func Normalize(s string) string {
	s = stripDiacritics(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// BestMatch returns the candidate most similar to target with similarity at
// least cutoff. Candidates are scanned in lexicographic order and only a
// strictly better ratio replaces the current best, so ties resolve to the
// smallest candidate and the result is deterministic for identical inputs.
func BestMatch(target string, candidates []string, cutoff float64) (string, bool) {
	normTarget := Normalize(target)

	ordered := make([]string, len(candidates))
	copy(ordered, candidates)
	sort.Strings(ordered)

	best := ""
	bestRatio := 0.0
	for _, cand := range ordered {
		r := Ratio(normTarget, Normalize(cand))
		if r > bestRatio {
			best = cand
			bestRatio = r
		}
	}

	if bestRatio >= cutoff && best != "" {
		return best, true
	}
	return "", false
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing (combining accents)
			b.WriteRune(r)
		}
	}
	return b.String()
}
