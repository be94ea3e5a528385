package ratings

import (
	"math"
	"math/rand"
	"sync"
)

// GSAxModel derives a goalie's skill metric from their goals-against
// average. Swappable so real save-quality data can replace the simulation.
type GSAxModel interface {
	SkillFromGAA(gaa float64) float64
}

// SimulatedGSAx maps GAA bands to simulated GSAx values: elite goalies
// (GAA below 2.5) land clearly positive, middling ones near zero, the rest
// negative. Placeholder for real shot-quality data.
type SimulatedGSAx struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedGSAx creates a banded GSAx simulator seeded with seed.
func NewSimulatedGSAx(seed int64) *SimulatedGSAx {
	return &SimulatedGSAx{rng: rand.New(rand.NewSource(seed))}
}

func (m *SimulatedGSAx) SkillFromGAA(gaa float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var v float64
	switch {
	case gaa < 2.5:
		v = m.uniform(0.3, 0.9)
	case gaa < 3.1:
		v = m.uniform(-0.1, 0.25)
	default:
		v = m.uniform(-0.6, -0.1)
	}
	return math.Round(v*100) / 100
}

func (m *SimulatedGSAx) uniform(min, max float64) float64 {
	return min + m.rng.Float64()*(max-min)
}
