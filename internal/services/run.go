package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pucklab/nhl-totals/internal/lines"
	"github.com/pucklab/nhl-totals/internal/models"
	"github.com/pucklab/nhl-totals/internal/projection"
	"github.com/pucklab/nhl-totals/internal/ratings"
	"github.com/pucklab/nhl-totals/internal/reconcile"
	"github.com/pucklab/nhl-totals/internal/roster"
)

// ErrNoGames indicates an empty schedule for the requested date. Callers
// surface it as "no games", not as a failure.
var ErrNoGames = errors.New("no games scheduled")

// ErrUnknownGoalie indicates a goalie override that names nobody in the
// slate's roster.
var ErrUnknownGoalie = errors.New("goalie not in roster")

// Data source contracts consumed by the run pipeline. The HTTP clients in
// internal/providers satisfy these; tests substitute stubs.
type (
	ScheduleSource interface {
		FetchSchedule(ctx context.Context, date string) ([]models.Game, error)
	}
	StartersSource interface {
		FetchStarters(ctx context.Context) (map[string]string, error)
	}
	RosterSource interface {
		FetchRoster(ctx context.Context) ([]models.GoalieRecord, error)
	}
	OddsSource interface {
		FetchLines(ctx context.Context) (map[string]float64, error)
	}
)

// Slate is the transient per-run context: one build of the day's games,
// roster, ratings and projections. A new run replaces it entirely; nothing
// in it survives the process.
type Slate struct {
	mu sync.Mutex

	ID            uuid.UUID
	Date          string
	Games         []models.Game
	Starters      map[string]string
	Ratings       map[string]models.TeamRating
	Assignments   []models.StarterAssignment
	Projections   []models.Projection
	EdgeThreshold float64
	CreatedAt     time.Time

	store *roster.Store
}

// Roster returns the slate's augmented goalie database, name-ordered, for
// dropdown and report surfaces.
func (s *Slate) Roster() []models.GoalieRecord {
	return s.store.Records()
}

// RunService orchestrates a full projection run: fetch, reconcile, rate,
// project. Override calls recompute single games without refetching.
type RunService struct {
	schedule   ScheduleSource
	starters   StartersSource
	rosterSrc  RosterSource
	odds       OddsSource
	ratings    ratings.Provider
	reconciler *reconcile.Reconciler
	engine     *projection.Engine
	matcher    *lines.Matcher
	threshold  float64
	logger     *logrus.Logger
}

// NewRunService wires the pipeline. threshold is the default edge threshold
// applied to new slates.
func NewRunService(
	schedule ScheduleSource,
	starters StartersSource,
	rosterSrc RosterSource,
	odds OddsSource,
	ratingProvider ratings.Provider,
	reconciler *reconcile.Reconciler,
	engine *projection.Engine,
	matcher *lines.Matcher,
	threshold float64,
	logger *logrus.Logger,
) *RunService {
	return &RunService{
		schedule:   schedule,
		starters:   starters,
		rosterSrc:  rosterSrc,
		odds:       odds,
		ratings:    ratingProvider,
		reconciler: reconciler,
		engine:     engine,
		matcher:    matcher,
		threshold:  threshold,
		logger:     logger,
	}
}

// BuildSlate runs the full pipeline for date. A failed or empty schedule
// fetch yields ErrNoGames; every other degraded input (no starters, no
// roster, no odds) produces a usable slate with fallbacks applied.
func (rs *RunService) BuildSlate(ctx context.Context, date string) (*Slate, error) {
	games, err := rs.schedule.FetchSchedule(ctx, date)
	if err != nil {
		rs.logger.WithError(err).WithField("date", date).Warn("Schedule fetch failed, treating as empty slate")
		games = nil
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoGames, date)
	}

	rawStarters, err := rs.starters.FetchStarters(ctx)
	if err != nil {
		rs.logger.WithError(err).Warn("Starters fetch failed, defaulting to average goalies")
		rawStarters = map[string]string{}
	}

	rosterRecs, err := rs.rosterSrc.FetchRoster(ctx)
	if err != nil {
		rs.logger.WithError(err).Warn("Roster fetch failed, operating on synthesized entries only")
		rosterRecs = nil
	}

	store := roster.FromRecords(rosterRecs)
	resolved := rs.reconciler.Reconcile(rawStarters, store)

	teamRatings := rs.ratings.RatingsFor(slateTeams(games))

	oddsMap, err := rs.odds.FetchLines(ctx)
	if err != nil {
		rs.logger.WithError(err).Warn("Odds fetch failed, projections will carry no lines")
		oddsMap = map[string]float64{}
	}

	slate := &Slate{
		ID:            uuid.New(),
		Date:          date,
		Games:         games,
		Starters:      resolved,
		Ratings:       teamRatings,
		Assignments:   make([]models.StarterAssignment, len(games)),
		Projections:   make([]models.Projection, len(games)),
		EdgeThreshold: rs.threshold,
		CreatedAt:     time.Now(),
		store:         store,
	}

	for i, game := range games {
		slate.Assignments[i] = models.StarterAssignment{
			HomeGoalie: starterOrAverage(resolved, game.HomeTeam),
			AwayGoalie: starterOrAverage(resolved, game.AwayTeam),
		}

		var vegasLine *float64
		if len(oddsMap) > 0 {
			name := game.HomeDisplayName
			if name == "" {
				name = game.HomeTeam
			}
			line := rs.matcher.MatchLine(name, oddsMap)
			vegasLine = &line
		}

		slate.Projections[i] = rs.project(slate, i, vegasLine)
	}

	rs.logger.WithFields(logrus.Fields{
		"component": "run_service",
		"slate_id":  slate.ID.String(),
		"date":      date,
		"games":     len(games),
	}).Info("Built slate")

	return slate, nil
}

// OverrideGoalie swaps the goalie on one side of one game and recomputes
// only that game's projection. The name must exist in the slate's roster.
func (rs *RunService) OverrideGoalie(slate *Slate, gameIdx int, side, name string) error {
	slate.mu.Lock()
	defer slate.mu.Unlock()

	if gameIdx < 0 || gameIdx >= len(slate.Games) {
		return fmt.Errorf("game index %d out of range", gameIdx)
	}
	if _, ok := slate.store.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGoalie, name)
	}

	switch side {
	case "home":
		slate.Assignments[gameIdx].HomeGoalie = name
	case "away":
		slate.Assignments[gameIdx].AwayGoalie = name
	default:
		return fmt.Errorf("side must be home or away, got %q", side)
	}

	slate.Projections[gameIdx] = rs.project(slate, gameIdx, slate.Projections[gameIdx].VegasLine)
	return nil
}

// OverrideLine replaces one game's market total and recomputes its edge.
func (rs *RunService) OverrideLine(slate *Slate, gameIdx int, line float64) error {
	slate.mu.Lock()
	defer slate.mu.Unlock()

	if gameIdx < 0 || gameIdx >= len(slate.Games) {
		return fmt.Errorf("game index %d out of range", gameIdx)
	}

	slate.Projections[gameIdx] = rs.project(slate, gameIdx, &line)
	return nil
}

// SetEdgeThreshold changes the slate's signal threshold and recomputes
// every game's signal. Pure recalculation, no fetches.
func (rs *RunService) SetEdgeThreshold(slate *Slate, threshold float64) error {
	if threshold < 0 {
		return fmt.Errorf("edge threshold must be non-negative, got %v", threshold)
	}

	slate.mu.Lock()
	defer slate.mu.Unlock()

	slate.EdgeThreshold = threshold
	for i := range slate.Games {
		slate.Projections[i] = rs.project(slate, i, slate.Projections[i].VegasLine)
	}
	return nil
}

// project recomputes the projection for one game from the slate's current
// assignments and ratings. Caller holds the slate lock (or owns the slate
// exclusively during the initial build).
func (rs *RunService) project(slate *Slate, gameIdx int, vegasLine *float64) models.Projection {
	game := slate.Games[gameIdx]
	assignment := slate.Assignments[gameIdx]

	var home, away *models.TeamRating
	if r, ok := slate.Ratings[game.HomeTeam]; ok {
		home = &r
	}
	if r, ok := slate.Ratings[game.AwayTeam]; ok {
		away = &r
	}

	homeSkill := rs.skillFor(slate, assignment.HomeGoalie)
	awaySkill := rs.skillFor(slate, assignment.AwayGoalie)

	return rs.engine.Project(home, away, homeSkill, awaySkill, vegasLine, slate.EdgeThreshold)
}

func (rs *RunService) skillFor(slate *Slate, name string) float64 {
	rec, ok := slate.store.Lookup(name)
	if !ok {
		rs.logger.WithField("goalie", name).Warn("Assigned goalie missing from roster, using neutral skill")
		return 0
	}
	return rec.Skill
}

func starterOrAverage(resolved map[string]string, team string) string {
	if name, ok := resolved[team]; ok && name != "" {
		return name
	}
	return models.AverageGoalieName
}

func slateTeams(games []models.Game) []string {
	seen := make(map[string]struct{}, len(games)*2)
	var teams []string
	for _, g := range games {
		for _, t := range []string{g.HomeTeam, g.AwayTeam} {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				teams = append(teams, t)
			}
		}
	}
	sort.Strings(teams)
	return teams
}
