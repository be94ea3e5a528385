// Package providers implements clients for the external data sources the
// projection pipeline consumes. Every client degrades to empty data on
// failure; callers treat empty results as "nothing available", not errors.
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
)

// NHLScheduleClient fetches the day's slate from the NHL schedule API.
type NHLScheduleClient struct {
	httpClient *http.Client
	baseURL    string
	cache      models.CacheProvider
	breaker    models.BreakerProvider
	cacheTTL   time.Duration
	logger     *logrus.Logger
}

// NewNHLScheduleClient creates a schedule client.
func NewNHLScheduleClient(baseURL string, timeout time.Duration, cache models.CacheProvider, breaker models.BreakerProvider, cacheTTL time.Duration, logger *logrus.Logger) *NHLScheduleClient {
	return &NHLScheduleClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		cache:      cache,
		breaker:    breaker,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

type scheduleResponse struct {
	GameWeek []struct {
		Date  string `json:"date"`
		Games []struct {
			HomeTeam scheduleTeam `json:"homeTeam"`
			AwayTeam scheduleTeam `json:"awayTeam"`
		} `json:"games"`
	} `json:"gameWeek"`
}

type scheduleTeam struct {
	ID         int           `json:"id"`
	Abbrev     string        `json:"abbrev"`
	PlaceName  localizedName `json:"placeName"`
	CommonName localizedName `json:"commonName"`
}

type localizedName struct {
	Default string `json:"default"`
}

func (t scheduleTeam) displayName() string {
	switch {
	case t.PlaceName.Default != "" && t.CommonName.Default != "":
		return t.PlaceName.Default + " " + t.CommonName.Default
	case t.PlaceName.Default != "":
		return t.PlaceName.Default
	default:
		return t.CommonName.Default
	}
}

// FetchSchedule returns the games scheduled for date (YYYY-MM-DD). An empty
// slice means no games that day.
func (c *NHLScheduleClient) FetchSchedule(ctx context.Context, date string) ([]models.Game, error) {
	cacheKey := BuildCacheKey("schedule", date)
	var cached []models.Game
	if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	result, err := c.breaker.Execute("nhl-api", func() (interface{}, error) {
		return c.fetchSchedule(ctx, date)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	games := result.([]models.Game)
	if err := c.cache.Set(ctx, cacheKey, games, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache schedule")
	}
	return games, nil
}

func (c *NHLScheduleClient) fetchSchedule(ctx context.Context, date string) ([]models.Game, error) {
	url := fmt.Sprintf("%s/schedule/%s", c.baseURL, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule response: %w", err)
	}

	var parsed scheduleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse schedule response: %w", err)
	}

	var games []models.Game
	for _, day := range parsed.GameWeek {
		// The week endpoint returns surrounding days too; keep only the
		// requested one.
		if day.Date != date {
			continue
		}
		for _, g := range day.Games {
			games = append(games, models.Game{
				HomeTeam:        g.HomeTeam.Abbrev,
				AwayTeam:        g.AwayTeam.Abbrev,
				HomeID:          g.HomeTeam.ID,
				AwayID:          g.AwayTeam.ID,
				HomeDisplayName: g.HomeTeam.displayName(),
				AwayDisplayName: g.AwayTeam.displayName(),
			})
		}
	}

	c.logger.WithFields(logrus.Fields{
		"component": "schedule_provider",
		"date":      date,
		"games":     len(games),
	}).Info("Fetched schedule")

	return games, nil
}
