// Package lines matches a team's display name against a sportsbook odds
// mapping to find the applicable market total.
package lines

import (
	"sort"

	"github.com/pucklab/nhl-totals/internal/fuzzy"
)

// Matcher resolves market totals from an odds mapping keyed by whatever
// team naming the book uses (city, franchise, abbreviation).
type Matcher struct {
	cutoff      float64
	defaultLine float64
}

// NewMatcher creates a matcher. The cutoff is deliberately looser than the
// goalie-name cutoff because sportsbook team vocabularies vary more.
func NewMatcher(cutoff, defaultLine float64) *Matcher {
	return &Matcher{cutoff: cutoff, defaultLine: defaultLine}
}

// MatchLine returns the market total for teamDisplayName: an exact key hit,
// else the best fuzzy key at or above the cutoff, else the default line.
func (m *Matcher) MatchLine(teamDisplayName string, odds map[string]float64) float64 {
	if line, ok := odds[teamDisplayName]; ok {
		return line
	}

	keys := make([]string, 0, len(odds))
	for k := range odds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if match, ok := fuzzy.BestMatch(teamDisplayName, keys, m.cutoff); ok {
		return odds[match]
	}
	return m.defaultLine
}

// DefaultLine exposes the fallback total used when nothing matches.
func (m *Matcher) DefaultLine() float64 {
	return m.defaultLine
}
