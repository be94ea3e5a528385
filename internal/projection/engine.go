// Package projection composes team ratings and goalie skill into a
// per-game total and compares it against a market line.
package projection

import (
	"math"

	"github.com/pucklab/nhl-totals/internal/models"
)

// Engine computes game totals. All methods are pure so a single goalie or
// line override recomputes one game without touching the rest of the slate.
type Engine struct {
	leagueAvgTotal float64
}

// NewEngine creates an engine that falls back to leagueAvgTotal when a
// team's rating is missing.
func NewEngine(leagueAvgTotal float64) *Engine {
	return &Engine{leagueAvgTotal: leagueAvgTotal}
}

// BaseTotal is the expected combined goals from team strength alone: the
// symmetric average of each offense against the opposing defense. A missing
// rating on either side degrades to the league average, never an error.
func (e *Engine) BaseTotal(home, away *models.TeamRating) float64 {
	if home == nil || away == nil {
		return e.leagueAvgTotal
	}
	return (home.Offense+away.Defense)/2 + (away.Offense+home.Defense)/2
}

// FinalTotal applies goalie adjustments. Skill reduces the total: a goalie
// who saves more goals than average lowers the projection.
func (e *Engine) FinalTotal(baseTotal, homeSkill, awaySkill float64) float64 {
	return baseTotal - homeSkill - awaySkill
}

// Edge is the signed difference between the model's total and the market's.
func (e *Engine) Edge(finalTotal, vegasLine float64) float64 {
	return finalTotal - vegasLine
}

// EdgeSignal flags a bet when the edge magnitude reaches threshold:
// OVER for a positive edge, UNDER for a negative one, NO_VALUE otherwise.
// Threshold is any non-negative float; the engine imposes no upper bound.
func (e *Engine) EdgeSignal(finalTotal, vegasLine, threshold float64) models.Signal {
	edge := e.Edge(finalTotal, vegasLine)
	if math.Abs(edge) < threshold {
		return models.SignalNoValue
	}
	if edge > 0 {
		return models.SignalOver
	}
	return models.SignalUnder
}

// Project assembles the full projection for one game. Ratings may be nil
// for either side and vegasLine may be nil when no odds are available.
func (e *Engine) Project(home, away *models.TeamRating, homeSkill, awaySkill float64, vegasLine *float64, threshold float64) models.Projection {
	base := e.BaseTotal(home, away)
	final := e.FinalTotal(base, homeSkill, awaySkill)

	p := models.Projection{
		BaseTotal:  base,
		HomeAdj:    homeSkill,
		AwayAdj:    awaySkill,
		FinalTotal: final,
		Signal:     models.SignalNoValue,
	}
	if vegasLine != nil {
		edge := e.Edge(final, *vegasLine)
		p.VegasLine = vegasLine
		p.Edge = &edge
		p.Signal = e.EdgeSignal(final, *vegasLine, threshold)
	}
	return p
}
