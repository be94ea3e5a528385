package models

import (
	"context"
	"time"
)

// Sentinel roster entries. Every slate's roster carries both so that a game
// can always be pointed at a usable goalie, even when nothing was scraped.
const (
	AverageGoalieName = "Average Goalie"
	BackupRookieName  = "Backup/Rookie"
	BackupRookieSkill = -0.40
	SentinelTeam      = "NHL"
)

// GoalieRecord is one entry in the goalie database. Skill is a GSAx-style
// signed metric: positive saves more goals than league average, negative
// fewer. It is subtracted from a game's projected total.
type GoalieRecord struct {
	Name  string  `json:"name"`
	Team  string  `json:"team"`
	Skill float64 `json:"skill"`
}

// Game is a single scheduled matchup. Display names are optional and only
// used for matching against sportsbook odds keys.
type Game struct {
	HomeTeam        string `json:"home_team"`
	AwayTeam        string `json:"away_team"`
	HomeID          int    `json:"home_id,omitempty"`
	AwayID          int    `json:"away_id,omitempty"`
	HomeDisplayName string `json:"home_display_name,omitempty"`
	AwayDisplayName string `json:"away_display_name,omitempty"`
}

// TeamRating holds the per-team strength inputs to the base total.
// Offense and defense are expected-goal contributions, not win rates.
type TeamRating struct {
	Team    string  `json:"team"`
	Offense float64 `json:"offense"`
	Defense float64 `json:"defense"`
}

// StarterAssignment is the resolved goalie pair for one game. Both names are
// guaranteed to exist in the slate's roster.
type StarterAssignment struct {
	AwayGoalie string `json:"away_goalie"`
	HomeGoalie string `json:"home_goalie"`
}

// Signal is the over/under recommendation for a game.
type Signal string

const (
	SignalOver    Signal = "OVER"
	SignalUnder   Signal = "UNDER"
	SignalNoValue Signal = "NO_VALUE"
)

// Projection is the computed total for one game. VegasLine and Edge are nil
// when no odds were available for the slate.
type Projection struct {
	BaseTotal  float64  `json:"base_total"`
	HomeAdj    float64  `json:"home_adj"`
	AwayAdj    float64  `json:"away_adj"`
	FinalTotal float64  `json:"final_total"`
	VegasLine  *float64 `json:"vegas_line,omitempty"`
	Edge       *float64 `json:"edge,omitempty"`
	Signal     Signal   `json:"signal"`
}

// CacheProvider defines the interface for the fetch cache. Keys are supplied
// by the caller (endpoint identity plus date) so cache layout stays explicit.
type CacheProvider interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
}

// BreakerProvider wraps external calls with circuit breaker protection.
type BreakerProvider interface {
	Execute(service string, fn func() (interface{}, error)) (interface{}, error)
}
