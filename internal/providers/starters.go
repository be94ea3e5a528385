package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/pucklab/nhl-totals/internal/models"
)

// DailyFaceoffClient scrapes projected starting goalies. The page lists
// each matchup as away team first, home team second, with goalie names in
// the same order. The returned mapping is raw scraped text; cleaning and
// reconciliation happen downstream.
type DailyFaceoffClient struct {
	httpClient *http.Client
	url        string
	cache      models.CacheProvider
	breaker    models.BreakerProvider
	cacheTTL   time.Duration
	logger     *logrus.Logger
}

// NewDailyFaceoffClient creates a starters scraper.
func NewDailyFaceoffClient(url string, timeout time.Duration, cache models.CacheProvider, breaker models.BreakerProvider, cacheTTL time.Duration, logger *logrus.Logger) *DailyFaceoffClient {
	return &DailyFaceoffClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		cache:      cache,
		breaker:    breaker,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// FetchStarters returns the scraped team -> starter-name mapping. An empty
// map means nothing could be scraped; every game then falls back to the
// average goalie.
func (c *DailyFaceoffClient) FetchStarters(ctx context.Context) (map[string]string, error) {
	cacheKey := BuildCacheKey("starters", time.Now().Format("2006-01-02"))
	var cached map[string]string
	if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	result, err := c.breaker.Execute("dailyfaceoff", func() (interface{}, error) {
		return c.scrapeStarters(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scrape starters: %w", err)
	}

	starters := result.(map[string]string)
	if err := c.cache.Set(ctx, cacheKey, starters, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache starters")
	}
	return starters, nil
}

func (c *DailyFaceoffClient) scrapeStarters(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create starters request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("starters request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("starters page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse starters page: %w", err)
	}

	starters := make(map[string]string)
	doc.Find("div.starting-goalies_matchup").Each(func(_ int, matchup *goquery.Selection) {
		teams := matchup.Find("span.logo_ticker")
		goalies := matchup.Find("h4.name")
		if teams.Length() < 2 || goalies.Length() < 2 {
			return
		}

		// Away listed first, home second.
		awayTeam := strings.TrimSpace(teams.Eq(0).Text())
		homeTeam := strings.TrimSpace(teams.Eq(1).Text())
		awayGoalie := strings.TrimSpace(goalies.Eq(0).Text())
		homeGoalie := strings.TrimSpace(goalies.Eq(1).Text())

		if awayTeam != "" {
			starters[awayTeam] = awayGoalie
		}
		if homeTeam != "" {
			starters[homeTeam] = homeGoalie
		}
	})

	c.logger.WithFields(logrus.Fields{
		"component": "starters_provider",
		"teams":     len(starters),
	}).Info("Scraped projected starters")

	return starters, nil
}
