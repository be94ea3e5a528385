package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DataFetcherService periodically warms the fetch cache so user-triggered
// runs hit fresh cached data instead of blocking on external calls. The
// providers cache internally, so each job only has to invoke the fetch.
type DataFetcherService struct {
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  ScheduleSource
	starters  StartersSource
	rosterSrc RosterSource
	odds      OddsSource
	mu        sync.RWMutex
	jobs      map[string]JobInfo
	isRunning bool
}

// JobInfo represents information about a scheduled job
type JobInfo struct {
	Name       string        `json:"name"`
	Schedule   string        `json:"schedule"`
	LastRun    time.Time     `json:"last_run"`
	Status     string        `json:"status"`
	RunCount   int           `json:"run_count"`
	ErrorCount int           `json:"error_count"`
	LastError  string        `json:"last_error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// NewDataFetcherService creates a cache-warming scheduler over the four
// external sources.
func NewDataFetcherService(
	schedule ScheduleSource,
	starters StartersSource,
	rosterSrc RosterSource,
	odds OddsSource,
	logger *logrus.Logger,
) *DataFetcherService {
	cronLogger := cron.VerbosePrintfLogger(logger)
	return &DataFetcherService{
		logger:    logger,
		cron:      cron.New(cron.WithLogger(cronLogger)),
		schedule:  schedule,
		starters:  starters,
		rosterSrc: rosterSrc,
		odds:      odds,
		jobs:      make(map[string]JobInfo),
	}
}

// Start schedules the warm-up jobs and starts the cron loop.
func (dfs *DataFetcherService) Start() error {
	dfs.mu.Lock()
	defer dfs.mu.Unlock()

	if dfs.isRunning {
		return fmt.Errorf("data fetcher service is already running")
	}

	dfs.logger.WithField("component", "data_fetcher").Info("Starting DataFetcherService with scheduled jobs")

	if err := dfs.scheduleJobs(); err != nil {
		return fmt.Errorf("failed to schedule jobs: %w", err)
	}

	dfs.cron.Start()
	dfs.isRunning = true
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (dfs *DataFetcherService) Stop() {
	dfs.mu.Lock()
	defer dfs.mu.Unlock()

	if !dfs.isRunning {
		return
	}
	ctx := dfs.cron.Stop()
	<-ctx.Done()
	dfs.isRunning = false
	dfs.logger.WithField("component", "data_fetcher").Info("DataFetcherService stopped")
}

// Jobs returns a snapshot of the scheduled job states.
func (dfs *DataFetcherService) Jobs() map[string]JobInfo {
	dfs.mu.RLock()
	defer dfs.mu.RUnlock()
	out := make(map[string]JobInfo, len(dfs.jobs))
	for k, v := range dfs.jobs {
		out[k] = v
	}
	return out
}

func (dfs *DataFetcherService) scheduleJobs() error {
	// Schedule and starters move during the day; roster barely does.
	if err := dfs.addJob("schedule_warm", "*/30 * * * *", dfs.warmSchedule); err != nil {
		return err
	}
	if err := dfs.addJob("starters_warm", "*/15 * * * *", dfs.warmStarters); err != nil {
		return err
	}
	if err := dfs.addJob("roster_warm", "0 */6 * * *", dfs.warmRoster); err != nil {
		return err
	}
	if err := dfs.addJob("odds_warm", "*/15 * * * *", dfs.warmOdds); err != nil {
		return err
	}
	return nil
}

func (dfs *DataFetcherService) addJob(name, spec string, fn func(ctx context.Context) error) error {
	dfs.jobs[name] = JobInfo{Name: name, Schedule: spec, Status: "scheduled"}

	_, err := dfs.cron.AddFunc(spec, func() {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		err := fn(ctx)
		dfs.recordRun(name, time.Since(start), err)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	return nil
}

func (dfs *DataFetcherService) recordRun(name string, duration time.Duration, err error) {
	dfs.mu.Lock()
	defer dfs.mu.Unlock()

	job := dfs.jobs[name]
	job.LastRun = time.Now()
	job.Duration = duration
	job.RunCount++
	if err != nil {
		job.ErrorCount++
		job.LastError = err.Error()
		job.Status = "error"
		dfs.logger.WithError(err).WithFields(logrus.Fields{
			"component": "data_fetcher",
			"job":       name,
		}).Warn("Scheduled fetch failed")
	} else {
		job.LastError = ""
		job.Status = "ok"
	}
	dfs.jobs[name] = job
}

func (dfs *DataFetcherService) warmSchedule(ctx context.Context) error {
	_, err := dfs.schedule.FetchSchedule(ctx, time.Now().Format("2006-01-02"))
	return err
}

func (dfs *DataFetcherService) warmStarters(ctx context.Context) error {
	_, err := dfs.starters.FetchStarters(ctx)
	return err
}

func (dfs *DataFetcherService) warmRoster(ctx context.Context) error {
	_, err := dfs.rosterSrc.FetchRoster(ctx)
	return err
}

func (dfs *DataFetcherService) warmOdds(ctx context.Context) error {
	_, err := dfs.odds.FetchLines(ctx)
	return err
}
