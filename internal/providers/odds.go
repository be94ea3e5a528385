package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pucklab/nhl-totals/internal/models"
)

// OddsAPIClient fetches sportsbook game totals. With no API key configured
// it returns an empty mapping and the whole odds feature degrades quietly.
type OddsAPIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      models.CacheProvider
	breaker    models.BreakerProvider
	cacheTTL   time.Duration
	logger     *logrus.Logger
}

// NewOddsAPIClient creates an odds client.
func NewOddsAPIClient(baseURL, apiKey string, timeout time.Duration, cache models.CacheProvider, breaker models.BreakerProvider, cacheTTL time.Duration, logger *logrus.Logger) *OddsAPIClient {
	return &OddsAPIClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		cache:      cache,
		breaker:    breaker,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

type oddsEvent struct {
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Bookmakers []struct {
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string  `json:"name"`
				Point float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// FetchLines returns a team-display-name -> total mapping. Both sides of a
// game map to the same total so either display name finds the line.
func (c *OddsAPIClient) FetchLines(ctx context.Context) (map[string]float64, error) {
	if c.apiKey == "" {
		return map[string]float64{}, nil
	}

	cacheKey := BuildCacheKey("odds", time.Now().Format("2006-01-02"))
	var cached map[string]float64
	if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	result, err := c.breaker.Execute("odds-api", func() (interface{}, error) {
		return c.fetchLines(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}

	oddsMap := result.(map[string]float64)
	if err := c.cache.Set(ctx, cacheKey, oddsMap, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache odds")
	}
	return oddsMap, nil
}

func (c *OddsAPIClient) fetchLines(ctx context.Context) (map[string]float64, error) {
	endpoint := fmt.Sprintf("%s/sports/icehockey_nhl/odds", c.baseURL)
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("regions", "us")
	q.Set("markets", "totals")
	q.Set("oddsFormat", "american")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create odds request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odds request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read odds response: %w", err)
	}

	var events []oddsEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to parse odds response: %w", err)
	}

	oddsMap := make(map[string]float64)
	for _, ev := range events {
		total, ok := firstTotal(ev)
		if !ok {
			continue
		}
		if ev.HomeTeam != "" {
			oddsMap[ev.HomeTeam] = total
		}
		if ev.AwayTeam != "" {
			oddsMap[ev.AwayTeam] = total
		}
	}

	c.logger.WithFields(logrus.Fields{
		"component": "odds_provider",
		"teams":     len(oddsMap),
	}).Info("Fetched market totals")

	return oddsMap, nil
}

func firstTotal(ev oddsEvent) (float64, bool) {
	for _, bm := range ev.Bookmakers {
		for _, market := range bm.Markets {
			if market.Key != "totals" {
				continue
			}
			for _, outcome := range market.Outcomes {
				if outcome.Name == "Over" {
					return outcome.Point, true
				}
			}
		}
	}
	return 0, false
}
