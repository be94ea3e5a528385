package projection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pucklab/nhl-totals/internal/models"
	"github.com/pucklab/nhl-totals/internal/projection"
)

const leagueAvg = 6.2

func ptr(f float64) *float64 { return &f }

func TestBaseTotal(t *testing.T) {
	e := projection.NewEngine(leagueAvg)

	home := &models.TeamRating{Team: "NYR", Offense: 3.2, Defense: 3.0}
	away := &models.TeamRating{Team: "BOS", Offense: 3.1, Defense: 2.9}

	// (3.2+2.9)/2 + (3.1+3.0)/2
	assert.InDelta(t, 6.1, e.BaseTotal(home, away), 1e-9)
}

func TestBaseTotalMissingRating(t *testing.T) {
	e := projection.NewEngine(leagueAvg)
	home := &models.TeamRating{Team: "NYR", Offense: 3.2, Defense: 3.0}

	assert.Equal(t, leagueAvg, e.BaseTotal(nil, nil))
	assert.Equal(t, leagueAvg, e.BaseTotal(home, nil))
	assert.Equal(t, leagueAvg, e.BaseTotal(nil, home))
}

func TestFinalTotal(t *testing.T) {
	e := projection.NewEngine(leagueAvg)

	assert.InDelta(t, 5.45, e.FinalTotal(6.0, 0.75, -0.2), 1e-9)
	assert.InDelta(t, 6.0, e.FinalTotal(6.0, 0, 0), 1e-9)
}

func TestFinalTotalMonotonicInSkill(t *testing.T) {
	e := projection.NewEngine(leagueAvg)

	skills := []float64{-0.6, -0.2, 0.0, 0.3, 0.9}
	prev := e.FinalTotal(6.0, skills[0], 0.1)
	for _, s := range skills[1:] {
		cur := e.FinalTotal(6.0, s, 0.1)
		assert.Less(t, cur, prev, "higher home skill must lower the total")
		prev = cur
	}

	prev = e.FinalTotal(6.0, 0.1, skills[0])
	for _, s := range skills[1:] {
		cur := e.FinalTotal(6.0, 0.1, s)
		assert.Less(t, cur, prev, "higher away skill must lower the total")
		prev = cur
	}
}

func TestEdgeSignal(t *testing.T) {
	e := projection.NewEngine(leagueAvg)

	tests := []struct {
		name      string
		final     float64
		line      float64
		threshold float64
		want      models.Signal
	}{
		{name: "edge at threshold flags over", final: 6.0, line: 5.4, threshold: 0.5, want: models.SignalOver},
		{name: "edge below threshold has no value", final: 6.0, line: 5.4, threshold: 0.7, want: models.SignalNoValue},
		{name: "negative edge flags under", final: 5.0, line: 5.8, threshold: 0.5, want: models.SignalUnder},
		{name: "zero threshold flags any positive edge", final: 6.01, line: 6.0, threshold: 0, want: models.SignalOver},
		{name: "exact line with zero threshold is under by convention", final: 6.0, line: 6.0, threshold: 0, want: models.SignalUnder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.EdgeSignal(tt.final, tt.line, tt.threshold))
		})
	}
}

func TestProjectWithLine(t *testing.T) {
	e := projection.NewEngine(leagueAvg)
	home := &models.TeamRating{Team: "NYR", Offense: 3.2, Defense: 3.0}
	away := &models.TeamRating{Team: "BOS", Offense: 3.1, Defense: 2.9}

	p := e.Project(home, away, 0.5, 0.2, ptr(5.0), 0.3)

	assert.InDelta(t, 6.1, p.BaseTotal, 1e-9)
	assert.Equal(t, 0.5, p.HomeAdj)
	assert.Equal(t, 0.2, p.AwayAdj)
	assert.InDelta(t, 5.4, p.FinalTotal, 1e-9)
	require.NotNil(t, p.VegasLine)
	require.NotNil(t, p.Edge)
	assert.InDelta(t, 0.4, *p.Edge, 1e-9)
	assert.Equal(t, models.SignalOver, p.Signal)
}

func TestProjectWithoutLine(t *testing.T) {
	e := projection.NewEngine(leagueAvg)

	p := e.Project(nil, nil, 0, 0, nil, 0.5)

	assert.Equal(t, leagueAvg, p.BaseTotal)
	assert.Equal(t, leagueAvg, p.FinalTotal)
	assert.Nil(t, p.VegasLine)
	assert.Nil(t, p.Edge)
	assert.Equal(t, models.SignalNoValue, p.Signal)
}
