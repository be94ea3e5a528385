// Package ratings supplies per-team offense/defense strength. The shipped
// implementation simulates ratings and stands in for a real expected-goals
// model; anything satisfying Provider can replace it.
package ratings

import (
	"math/rand"
	"sync"

	"github.com/pucklab/nhl-totals/internal/models"
)

// Provider returns one TeamRating per requested team code.
type Provider interface {
	RatingsFor(teams []string) map[string]models.TeamRating
}

const (
	simRatingMin = 2.9
	simRatingMax = 3.4
)

// SimulatedProvider draws offense/defense ratings uniformly from a fixed
// band. Placeholder for a real xG model; seedable for reproducible tests.
type SimulatedProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedProvider creates a provider seeded with seed.
func NewSimulatedProvider(seed int64) *SimulatedProvider {
	return &SimulatedProvider{rng: rand.New(rand.NewSource(seed))}
}

// RatingsFor returns exactly one rating per requested team. Teams are not
// deduplicated by the caller, so repeated codes resolve to a single entry.
func (p *SimulatedProvider) RatingsFor(teams []string) map[string]models.TeamRating {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]models.TeamRating, len(teams))
	for _, team := range teams {
		if _, ok := out[team]; ok {
			continue
		}
		out[team] = models.TeamRating{
			Team:    team,
			Offense: p.uniform(simRatingMin, simRatingMax),
			Defense: p.uniform(simRatingMin, simRatingMax),
		}
	}
	return out
}

func (p *SimulatedProvider) uniform(min, max float64) float64 {
	return min + p.rng.Float64()*(max-min)
}
