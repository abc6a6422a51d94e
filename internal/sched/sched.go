// Package sched runs the nightly task-generation trigger.
package sched

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Abdudhi100/swot-coach/internal/config"
	"github.com/Abdudhi100/swot-coach/internal/notify"
	"github.com/Abdudhi100/swot-coach/internal/recur"
	"github.com/Abdudhi100/swot-coach/internal/taskgen"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler wraps cron-based jobs in the reference timezone.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler whose specs evaluate in loc.
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleDaily registers a daily job at the given HH:MM time. The
// scheduler owns a single entry per registration, so calling this once
// per process avoids duplicate recurring jobs.
func (s *Scheduler) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	hour, minute, err := config.ParseClock(timeStr)
	if err != nil {
		return 0, fmt.Errorf("sched: %w", err)
	}
	// cron format: second minute hour dom month dow
	spec := fmt.Sprintf("0 %d %d * * *", minute, hour)
	return s.cron.AddFunc(spec, job)
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// GenerationJob builds the nightly job: generate tomorrow's tasks for all
// owners, log the report, and push a digest through the notifiers. Per-item
// failures only affect the count; the job itself never panics the cron
// goroutine.
func GenerationJob(gormDB *gorm.DB, loc *time.Location, fanout *notify.Fanout) func() {
	return func() {
		target := recur.Today(loc).AddDate(0, 0, 1)
		report, err := taskgen.ForDate(gormDB, target)
		if err != nil {
			log.Printf("sched: nightly generation for %s: %v", target.Format("2006-01-02"), err)
			return
		}
		log.Printf("sched: generated %d tasks for %s (%d items failed)",
			report.Created, target.Format("2006-01-02"), len(report.Failures))
		for _, f := range report.Failures {
			log.Printf("sched: item %d skipped: %v", f.ItemID, f.Err)
		}

		if fanout == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		digest := notify.Digest{
			Date:    report.Date,
			Created: report.Created,
			Failed:  len(report.Failures),
		}
		if err := fanout.Send(ctx, digest); err != nil {
			log.Printf("sched: digest: %v", err)
		}
	}
}
