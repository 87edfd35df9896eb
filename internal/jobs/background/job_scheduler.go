package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"glyphor/internal/caching"
	"glyphor/internal/services"
)

// JobScheduler drives the periodic engine work: the breach-monitor tick,
// the daily dashboard metric snapshots and the spike report refresh.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	monitorSvc   *services.MonitorService
	dashboardSvc *services.DashboardService
	spikeSvc     *services.SpikeService
	cacheSvc     caching.CacheService
	tickInterval time.Duration
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

func NewJobScheduler(monitorSvc *services.MonitorService, dashboardSvc *services.DashboardService,
	spikeSvc *services.SpikeService, cacheSvc caching.CacheService, tickInterval time.Duration) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	if tickInterval <= 0 {
		tickInterval = services.DefaultTickInterval
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		monitorSvc:   monitorSvc,
		dashboardSvc: dashboardSvc,
		spikeSvc:     spikeSvc,
		cacheSvc:     cacheSvc,
		tickInterval: tickInterval,
		jobs:         make(map[string]gocron.Job),
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
	// Breach monitor tick. Singleton mode so a slow sweep is never overlapped
	// by the next one.
	monitorJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.tickInterval),
		gocron.NewTask(js.runMonitorTick),
		gocron.WithName("breach-monitor-tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create monitor tick job: %v", err)
	} else {
		js.jobs["monitor-tick"] = monitorJob
	}

	// Daily dashboard metric snapshots at midnight.
	metricsJob, err := js.scheduler.NewJob(
		gocron.CronJob("0 0 * * *", false),
		gocron.NewTask(js.recordDailyMetrics),
		gocron.WithName("daily-dashboard-metrics"),
	)
	if err != nil {
		log.Printf("Failed to create daily metrics job: %v", err)
	} else {
		js.jobs["daily-metrics"] = metricsJob
	}

	// Spike report refresh - every 5 minutes, keeps the cached report warm.
	spikeJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshSpikeReport),
		gocron.WithName("spike-report-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create spike report job: %v", err)
	} else {
		js.jobs["spike-report"] = spikeJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) runMonitorTick() error {
	if err := js.monitorSvc.Tick(context.Background()); err != nil {
		log.Printf("Monitor tick failed: %v", err)
		return err
	}
	return nil
}

func (js *JobScheduler) recordDailyMetrics() error {
	log.Printf("Recording daily dashboard metrics")

	ctx := context.Background()
	if err := js.dashboardSvc.RecordDailyMetrics(ctx); err != nil {
		log.Printf("Failed to record daily metrics: %v", err)
		return err
	}

	if js.cacheSvc != nil {
		if err := js.cacheSvc.InvalidateDashboard(ctx); err != nil {
			log.Printf("Failed to invalidate dashboard cache: %v", err)
		}
	}

	log.Printf("Completed daily dashboard metrics")
	return nil
}

func (js *JobScheduler) refreshSpikeReport() error {
	ctx := context.Background()
	report, err := js.spikeSvc.MonitoringReport(ctx)
	if err != nil {
		log.Printf("Failed to refresh spike report: %v", err)
		return err
	}

	if js.cacheSvc != nil {
		if err := js.cacheSvc.SetSpikeReport(ctx, report, 10*time.Minute); err != nil {
			log.Printf("Failed to cache spike report: %v", err)
		}
	}
	return nil
}

// AddJob adds a custom job to the scheduler
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)

	if err != nil {
		return err
	}

	js.jobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}

	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobs)
	jobs := make([]string, 0, len(js.jobs))

	for name := range js.jobs {
		jobs = append(jobs, name)
	}

	status["jobs"] = jobs

	return status
}
