package jobs

import (
	"fmt"
	"time"

	"github.com/farellandr/encuentro/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler registers the runner's jobs on a UTC, seconds-precision cron.
func NewScheduler(runner *JobRunner, cfg config.JobsConfig, log *zap.Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{"sweep_empty_groups", cfg.SweepEmptyGroups, runner.SweepEmptyGroups},
		{"attendance_summary", cfg.AttendanceSummary, runner.LogAttendanceSummary},
	}
	for _, job := range jobs {
		if _, err := c.AddFunc(job.spec, job.run); err != nil {
			return nil, fmt.Errorf("register %s job: %w", job.name, err)
		}
		log.Debug("registered job", zap.String("job", job.name), zap.String("spec", job.spec))
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("cron scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("cron scheduler stopped")
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
