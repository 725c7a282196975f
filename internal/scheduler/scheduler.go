package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ridepool/internal/jobs"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler with the provided job runner and
// registers the maintenance jobs.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	// Sweep stale pending payments every 10 minutes.
	if _, err := s.cron.AddFunc("*/10 * * * *", s.jobs.ExpireStalePayments); err != nil {
		log.Printf("scheduler: registering ExpireStalePayments: %v", err)
	}
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("scheduler stopped")
}
