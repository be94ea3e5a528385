package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pucklab/nhl-totals/internal/fuzzy"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		min  float64
		max  float64
	}{
		{name: "identical strings", a: "Igor Shesterkin", b: "Igor Shesterkin", min: 1.0, max: 1.0},
		{name: "both empty", a: "", b: "", min: 1.0, max: 1.0},
		{name: "one dropped letter stays close", a: "Igor Shesterkn", b: "Igor Shesterkin", min: 0.9, max: 1.0},
		{name: "unrelated names are distant", a: "Jeremy Swayman", b: "Igor Shesterkin", min: 0.0, max: 0.5},
		{name: "empty vs non-empty", a: "", b: "Igor Shesterkin", min: 0.0, max: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fuzzy.Ratio(tt.a, tt.b)
			assert.GreaterOrEqual(t, r, tt.min)
			assert.LessOrEqual(t, r, tt.max)
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	assert.InDelta(t, fuzzy.Ratio("Boston", "Boston Bruins"), fuzzy.Ratio("Boston Bruins", "Boston"), 1e-9)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Igor   Shesterkin ", "igor shesterkin"},
		{"Canadiens de Montréal", "canadiens de montreal"},
		{"JUUSE SAROS", "juuse saros"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fuzzy.Normalize(tt.in))
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"Igor Shesterkin", "Jeremy Swayman", "Juuse Saros"}

	t.Run("close name matches", func(t *testing.T) {
		match, ok := fuzzy.BestMatch("Igor Shesterkn", candidates, 0.6)
		assert.True(t, ok)
		assert.Equal(t, "Igor Shesterkin", match)
	})

	t.Run("accents do not defeat matching", func(t *testing.T) {
		match, ok := fuzzy.BestMatch("Igor Shestérkin", candidates, 0.6)
		assert.True(t, ok)
		assert.Equal(t, "Igor Shesterkin", match)
	})

	t.Run("nothing above cutoff", func(t *testing.T) {
		_, ok := fuzzy.BestMatch("Connor Hellebuyck", candidates, 0.6)
		assert.False(t, ok)
	})

	t.Run("empty candidate list", func(t *testing.T) {
		_, ok := fuzzy.BestMatch("Igor Shesterkin", nil, 0.6)
		assert.False(t, ok)
	})

	t.Run("ties resolve to lexicographically smallest", func(t *testing.T) {
		// Both candidates are equidistant from the target.
		match, ok := fuzzy.BestMatch("aab", []string{"aac", "aad"}, 0.5)
		assert.True(t, ok)
		assert.Equal(t, "aac", match)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first, _ := fuzzy.BestMatch("Saros", candidates, 0.3)
		for i := 0; i < 10; i++ {
			again, _ := fuzzy.BestMatch("Saros", candidates, 0.3)
			assert.Equal(t, first, again)
		}
	})
}
