package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pucklab/nhl-totals/internal/models"
	"github.com/pucklab/nhl-totals/internal/ratings"
)

// NHLRosterClient fetches the official active-goalie list and assigns each
// goalie an initial skill metric through the GSAx model.
type NHLRosterClient struct {
	httpClient *http.Client
	baseURL    string
	gsax       ratings.GSAxModel
	cache      models.CacheProvider
	breaker    models.BreakerProvider
	cacheTTL   time.Duration
	logger     *logrus.Logger
}

// NewNHLRosterClient creates a roster client.
func NewNHLRosterClient(baseURL string, timeout time.Duration, gsax ratings.GSAxModel, cache models.CacheProvider, breaker models.BreakerProvider, cacheTTL time.Duration, logger *logrus.Logger) *NHLRosterClient {
	return &NHLRosterClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		gsax:       gsax,
		cache:      cache,
		breaker:    breaker,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

type goalieLeadersResponse struct {
	GoalsAgainstAverage []struct {
		FirstName  localizedName `json:"firstName"`
		LastName   localizedName `json:"lastName"`
		TeamAbbrev string        `json:"teamAbbrev"`
		Value      float64       `json:"value"`
	} `json:"goalsAgainstAverage"`
}

// FetchRoster returns the official goalie list with skill metrics. An empty
// slice leaves the pipeline to operate on synthesized and sentinel entries.
func (c *NHLRosterClient) FetchRoster(ctx context.Context) ([]models.GoalieRecord, error) {
	cacheKey := BuildCacheKey("roster", "active-goalies")
	var cached []models.GoalieRecord
	if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	result, err := c.breaker.Execute("nhl-api", func() (interface{}, error) {
		return c.fetchRoster(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goalie roster: %w", err)
	}

	recs := result.([]models.GoalieRecord)
	if err := c.cache.Set(ctx, cacheKey, recs, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache goalie roster")
	}
	return recs, nil
}

func (c *NHLRosterClient) fetchRoster(ctx context.Context) ([]models.GoalieRecord, error) {
	url := fmt.Sprintf("%s/goalie-stats-leaders/current?categories=goalsAgainstAverage&limit=250", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create roster request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster response: %w", err)
	}

	var parsed goalieLeadersResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse roster response: %w", err)
	}

	recs := make([]models.GoalieRecord, 0, len(parsed.GoalsAgainstAverage))
	for _, g := range parsed.GoalsAgainstAverage {
		name := g.FirstName.Default + " " + g.LastName.Default
		recs = append(recs, models.GoalieRecord{
			Name:  name,
			Team:  g.TeamAbbrev,
			Skill: c.gsax.SkillFromGAA(g.Value),
		})
	}

	c.logger.WithFields(logrus.Fields{
		"component": "roster_provider",
		"goalies":   len(recs),
	}).Info("Fetched goalie roster")

	return recs, nil
}
