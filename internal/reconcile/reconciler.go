// Package reconcile maps noisy scraped starter names onto the canonical
// roster, synthesizing entries for goalies the roster has never seen.
package reconcile

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/pucklab/nhl-totals/internal/fuzzy"
	"github.com/pucklab/nhl-totals/internal/models"
	"github.com/pucklab/nhl-totals/internal/roster"
)

// InitialSkillFunc assigns the skill metric for a goalie that had to be
// synthesized into the roster. Swappable so a real model can replace the
// neutral default.
type InitialSkillFunc func(team, name string) float64

// NeutralInitialSkill treats an unknown goalie as exactly league average.
func NeutralInitialSkill(string, string) float64 { return 0.00 }

// Reconciler resolves scraped starter names against a roster store.
type Reconciler struct {
	cutoff       float64
	initialSkill InitialSkillFunc
	logger       *logrus.Logger
}

// NewReconciler creates a reconciler with the given fuzzy-match cutoff.
// A nil initialSkill falls back to NeutralInitialSkill.
func NewReconciler(cutoff float64, initialSkill InitialSkillFunc, logger *logrus.Logger) *Reconciler {
	if initialSkill == nil {
		initialSkill = NeutralInitialSkill
	}
	return &Reconciler{
		cutoff:       cutoff,
		initialSkill: initialSkill,
		logger:       logger,
	}
}

// Reconcile maps each scraped starter onto a roster name, in priority
// order: exact match, best fuzzy match at or above the cutoff, then
// synthesis of a new record. Every returned name exists in the store when
// Reconcile returns, and the sentinel fallback entries are guaranteed.
// Teams are processed in sorted order so identical inputs always produce
// identical output.
func (r *Reconciler) Reconcile(starters map[string]string, store *roster.Store) map[string]string {
	resolved := make(map[string]string, len(starters))

	teams := make([]string, 0, len(starters))
	for team := range starters {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	for _, team := range teams {
		name := CleanScrapedName(starters[team])
		if name == "" {
			r.logger.WithFields(logrus.Fields{
				"component": "reconciler",
				"team":      team,
			}).Debug("Empty scraped name, leaving team to fallback goalie")
			continue
		}

		// 1. Exact match
		if _, ok := store.Lookup(name); ok {
			resolved[team] = name
			continue
		}

		// 2. Fuzzy match
		if match, ok := fuzzy.BestMatch(name, store.AllNames(), r.cutoff); ok {
			r.logger.WithFields(logrus.Fields{
				"component": "reconciler",
				"team":      team,
				"scraped":   name,
				"matched":   match,
			}).Debug("Fuzzy matched scraped starter")
			resolved[team] = match
			continue
		}

		// 3. Unknown goalie, add to the roster
		store.Upsert(models.GoalieRecord{
			Name:  name,
			Team:  team,
			Skill: r.initialSkill(team, name),
		})
		resolved[team] = name
		r.logger.WithFields(logrus.Fields{
			"component": "reconciler",
			"team":      team,
			"name":      name,
		}).Info("Added unrecognized starter to roster")
	}

	store.EnsureSentinels()
	return resolved
}
