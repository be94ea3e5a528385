package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// External APIs
	NHLAPIBaseURL      string        `mapstructure:"NHL_API_BASE_URL"`
	DailyFaceoffURL    string        `mapstructure:"DAILYFACEOFF_URL"`
	OddsAPIBaseURL     string        `mapstructure:"ODDS_API_BASE_URL"`
	OddsAPIKey         string        `mapstructure:"ODDS_API_KEY"`
	ExternalAPITimeout time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`

	// Circuit breaker
	CircuitBreakerThreshold int `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Cache TTLs
	ScheduleCacheTTL time.Duration `mapstructure:"SCHEDULE_CACHE_TTL"`
	StartersCacheTTL time.Duration `mapstructure:"STARTERS_CACHE_TTL"`
	RosterCacheTTL   time.Duration `mapstructure:"ROSTER_CACHE_TTL"`
	OddsCacheTTL     time.Duration `mapstructure:"ODDS_CACHE_TTL"`

	// Model knobs. The cutoffs and defaults mirror the projection model:
	// goalie-name matching is stricter than team-name matching because
	// sportsbook team vocabularies vary more.
	GoalieMatchCutoff float64 `mapstructure:"GOALIE_MATCH_CUTOFF"`
	TeamMatchCutoff   float64 `mapstructure:"TEAM_MATCH_CUTOFF"`
	LeagueAvgTotal    float64 `mapstructure:"LEAGUE_AVG_TOTAL"`
	DefaultVegasLine  float64 `mapstructure:"DEFAULT_VEGAS_LINE"`
	EdgeThreshold     float64 `mapstructure:"EDGE_THRESHOLD"`
	RatingSeed        int64   `mapstructure:"RATING_SEED"`

	// Feature flags
	EnableBackgroundJobs bool `mapstructure:"ENABLE_BACKGROUND_JOBS"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("NHL_API_BASE_URL", "https://api-web.nhle.com/v1")
	viper.SetDefault("DAILYFACEOFF_URL", "https://www.dailyfaceoff.com/starting-goalies")
	viper.SetDefault("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4")
	viper.SetDefault("ODDS_API_KEY", "")
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("SCHEDULE_CACHE_TTL", "1h")
	viper.SetDefault("STARTERS_CACHE_TTL", "1h")
	viper.SetDefault("ROSTER_CACHE_TTL", "24h")
	viper.SetDefault("ODDS_CACHE_TTL", "15m")
	viper.SetDefault("GOALIE_MATCH_CUTOFF", 0.6)
	viper.SetDefault("TEAM_MATCH_CUTOFF", 0.5)
	viper.SetDefault("LEAGUE_AVG_TOTAL", 6.2)
	viper.SetDefault("DEFAULT_VEGAS_LINE", 6.5)
	viper.SetDefault("EDGE_THRESHOLD", 0.5)
	viper.SetDefault("RATING_SEED", 0)
	viper.SetDefault("ENABLE_BACKGROUND_JOBS", false)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
