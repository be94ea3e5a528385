package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pucklab/nhl-totals/internal/api/handlers"
	"github.com/pucklab/nhl-totals/internal/config"
	"github.com/pucklab/nhl-totals/internal/lines"
	"github.com/pucklab/nhl-totals/internal/projection"
	"github.com/pucklab/nhl-totals/internal/providers"
	"github.com/pucklab/nhl-totals/internal/ratings"
	"github.com/pucklab/nhl-totals/internal/reconcile"
	"github.com/pucklab/nhl-totals/internal/services"
	"github.com/pucklab/nhl-totals/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithService("nhl-totals").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting NHL totals projection service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to Redis (fetch cache)
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("nhl-totals").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.WithService("nhl-totals").Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheService := services.NewCacheService(redisClient, structuredLogger)
	breakerService := services.NewCircuitBreakerService(
		cfg.CircuitBreakerThreshold,
		cfg.ExternalAPITimeout,
		structuredLogger,
	)

	// External data sources. Each degrades to empty data on failure; the run
	// pipeline applies fallbacks instead of surfacing fetch errors.
	scheduleClient := providers.NewNHLScheduleClient(
		cfg.NHLAPIBaseURL, cfg.ExternalAPITimeout,
		cacheService, breakerService, cfg.ScheduleCacheTTL, structuredLogger,
	)
	startersClient := providers.NewDailyFaceoffClient(
		cfg.DailyFaceoffURL, cfg.ExternalAPITimeout,
		cacheService, breakerService, cfg.StartersCacheTTL, structuredLogger,
	)
	rosterClient := providers.NewNHLRosterClient(
		cfg.NHLAPIBaseURL, cfg.ExternalAPITimeout,
		ratings.NewSimulatedGSAx(cfg.RatingSeed),
		cacheService, breakerService, cfg.RosterCacheTTL, structuredLogger,
	)
	oddsClient := providers.NewOddsAPIClient(
		cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.ExternalAPITimeout,
		cacheService, breakerService, cfg.OddsCacheTTL, structuredLogger,
	)
	if cfg.OddsAPIKey == "" {
		logger.WithService("nhl-totals").Info("No odds API key configured, projections will carry no market lines")
	}

	// Projection pipeline
	runService := services.NewRunService(
		scheduleClient,
		startersClient,
		rosterClient,
		oddsClient,
		ratings.NewSimulatedProvider(cfg.RatingSeed),
		reconcile.NewReconciler(cfg.GoalieMatchCutoff, nil, structuredLogger),
		projection.NewEngine(cfg.LeagueAvgTotal),
		lines.NewMatcher(cfg.TeamMatchCutoff, cfg.DefaultVegasLine),
		cfg.EdgeThreshold,
		structuredLogger,
	)
	registry := services.NewSlateRegistry()

	// Optional cache warming
	fetcher := services.NewDataFetcherService(
		scheduleClient, startersClient, rosterClient, oddsClient, structuredLogger,
	)
	if cfg.EnableBackgroundJobs {
		if err := fetcher.Start(); err != nil {
			logger.WithService("nhl-totals").Fatalf("Failed to start data fetcher: %v", err)
		}
		defer fetcher.Stop()
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	slateHandler := handlers.NewSlateHandler(runService, registry, structuredLogger)
	healthHandler := handlers.NewHealthHandler(redisClient, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/slates", slateHandler.CreateSlate)
		apiV1.GET("/slates/:id", slateHandler.GetSlate)
		apiV1.GET("/slates/:id/roster", slateHandler.GetRoster)
		apiV1.PUT("/slates/:id/games/:idx/goalie", slateHandler.OverrideGoalie)
		apiV1.PUT("/slates/:id/games/:idx/line", slateHandler.OverrideLine)
		apiV1.PUT("/slates/:id/threshold", slateHandler.SetThreshold)
	}

	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)
	router.HEAD("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("nhl-totals").WithField("port", cfg.Port).Info("NHL totals service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("nhl-totals").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("nhl-totals").Info("Shutting down NHL totals service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("nhl-totals").Fatalf("NHL totals service forced to shutdown: %v", err)
	}

	logger.WithService("nhl-totals").Info("NHL totals service exited")
}
