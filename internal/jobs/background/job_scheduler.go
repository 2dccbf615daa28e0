package background

import (
	"context"
	"log"
	"sync"
	"time"

	"shelflife/internal/caching"
	"shelflife/internal/jobs"
	"shelflife/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the background jobs: the periodic alert sweep and the
// dashboard stats cache refresh.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	alertSvc   *jobs.StockAlertService
	reportSvc  services.ReportService
	cacheSvc   caching.CacheService
	jobsByName map[string]gocron.Job
	mu         sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(alertSvc *jobs.StockAlertService, reportSvc services.ReportService, cacheSvc caching.CacheService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		alertSvc:   alertSvc,
		reportSvc:  reportSvc,
		cacheSvc:   cacheSvc,
		jobsByName: make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Stock alert sweep - every 30 minutes
	alertJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.alertSvc.ScheduledSweep, context.Background()),
		gocron.WithName("stock-alert-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create alert sweep job: %v", err)
	} else {
		js.jobsByName["stock-alert-sweep"] = alertJob
	}

	// Stats cache refresh - every 5 minutes
	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshStatsCache),
		gocron.WithName("stats-cache-refresh"),
	)
	if err != nil {
		log.Printf("Failed to create stats refresh job: %v", err)
	} else {
		js.jobsByName["stats-cache-refresh"] = statsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobsByName))
}

// refreshStatsCache recomputes the dashboard stats so the first request after
// a quiet period still hits a warm cache.
func (js *JobScheduler) refreshStatsCache() error {
	ctx := context.Background()

	if err := js.cacheSvc.InvalidateStats(ctx); err != nil {
		log.Printf("Failed to invalidate stats cache before refresh: %v", err)
	}

	if _, err := js.reportSvc.Stats(ctx, time.Now().UTC()); err != nil {
		log.Printf("Failed to refresh stats cache: %v", err)
		return err
	}

	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobsByName))
	for name := range js.jobsByName {
		names = append(names, name)
	}

	return map[string]interface{}{
		"total_jobs": len(js.jobsByName),
		"jobs":       names,
	}
}
