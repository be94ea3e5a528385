package lines_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pucklab/nhl-totals/internal/lines"
)

func TestMatchLineExact(t *testing.T) {
	m := lines.NewMatcher(0.5, 6.5)
	odds := map[string]float64{
		"Boston Bruins":    6.0,
		"New York Rangers": 5.5,
	}

	assert.Equal(t, 6.0, m.MatchLine("Boston Bruins", odds))
	assert.Equal(t, 5.5, m.MatchLine("New York Rangers", odds))
}

func TestMatchLineFuzzy(t *testing.T) {
	m := lines.NewMatcher(0.5, 6.5)

	t.Run("book uses city only", func(t *testing.T) {
		odds := map[string]float64{"Boston": 6.0}
		assert.Equal(t, 6.0, m.MatchLine("Boston Bruins", odds))
	})

	t.Run("model uses city only", func(t *testing.T) {
		odds := map[string]float64{"Boston Bruins": 6.0}
		assert.Equal(t, 6.0, m.MatchLine("Boston", odds))
	})
}

func TestMatchLineNoMatchUsesDefault(t *testing.T) {
	m := lines.NewMatcher(0.5, 6.5)
	odds := map[string]float64{"Edmonton Oilers": 6.5}

	assert.Equal(t, 6.5, m.MatchLine("ZZZ", odds))
}

func TestMatchLineEmptyOdds(t *testing.T) {
	m := lines.NewMatcher(0.5, 6.5)
	assert.Equal(t, 6.5, m.MatchLine("Boston Bruins", map[string]float64{}))
}

func TestMatchLineCustomDefault(t *testing.T) {
	m := lines.NewMatcher(0.5, 5.75)
	assert.Equal(t, 5.75, m.MatchLine("Boston Bruins", nil))
	assert.Equal(t, 5.75, m.DefaultLine())
}

func TestMatchLineDeterministic(t *testing.T) {
	m := lines.NewMatcher(0.5, 6.5)
	odds := map[string]float64{
		"New York Rangers":   5.5,
		"New York Islanders": 6.0,
	}

	first := m.MatchLine("NY Rangers", odds)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.MatchLine("NY Rangers", odds))
	}
	assert.Equal(t, 5.5, first)
}
